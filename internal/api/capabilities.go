package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/screenway/vidcaps/internal/api/models"
	"github.com/screenway/vidcaps/internal/registry"
)

// convertSummary converts a registry summary to the API response type.
func convertSummary(sum registry.Summary) models.CapabilitiesData {
	convertStatuses := func(statuses map[string]registry.ModuleStatus) map[string]string {
		out := make(map[string]string, len(statuses))
		for name, status := range statuses {
			out[name] = string(status)
		}
		return out
	}

	return models.CapabilitiesData{
		Encoding:   sum.Encoding,
		CSC:        sum.CSC,
		Decoding:   sum.Decoding,
		Encoders:   convertStatuses(sum.Encoders),
		Converters: convertStatuses(sum.Converters),
		Decoders:   convertStatuses(sum.Decoders),
	}
}

// registerCapabilityRoutes registers the registry and negotiation endpoints.
func (s *Server) registerCapabilityRoutes() {
	// Full capability snapshot
	huma.Register(s.api, huma.Operation{
		OperationID: "get-capabilities",
		Method:      http.MethodGet,
		Path:        "/api/capabilities",
		Summary:     "Capabilities",
		Description: "Get the full capability tables and module statuses",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*models.CapabilitiesResponse, error) {
		return &models.CapabilitiesResponse{
			Body: convertSummary(s.registry.Summary()),
		}, nil
	})

	// Encoding enumeration
	huma.Register(s.api, huma.Operation{
		OperationID: "list-encodings",
		Method:      http.MethodGet,
		Path:        "/api/encodings",
		Summary:     "List Encodings",
		Description: "List encodings and colorspaces the active registry can handle",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*models.EncodingsResponse, error) {
		return &models.EncodingsResponse{
			Body: models.EncodingsData{
				Encodings: s.registry.Encodings(),
				Decodings: s.registry.Decodings(),
				CSCInputs: s.registry.CSCInputs(),
			},
		}, nil
	})

	// Negotiation
	huma.Register(s.api, huma.Operation{
		OperationID: "negotiate",
		Method:      http.MethodPost,
		Path:        "/api/negotiate",
		Summary:     "Negotiate",
		Description: "Compute viable encoder input colorspaces per encoding for a peer's decode capabilities",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{400, 401},
	}, func(ctx context.Context, input *struct {
		Body models.NegotiateRequest
	}) (*models.NegotiateResponse, error) {
		if len(input.Body.Colorspaces) == 0 {
			return nil, huma.Error400BadRequest("At least one colorspace is required")
		}

		var result map[string][]string
		if input.Body.RGB {
			result = s.registry.ResolveByRGB(input.Body.Colorspaces)
		} else {
			result = s.registry.ResolveByColorspace(input.Body.Colorspaces)
		}

		return &models.NegotiateResponse{
			Body: models.NegotiateData{
				Encodings: result,
				Count:     len(result),
			},
		}, nil
	})
}
