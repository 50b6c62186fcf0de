// Package models defines the API request and response types.
package models

// HealthData represents the health check payload.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message" example:"API is healthy" doc:"Health details"`
}

// HealthResponse represents the HTTP response for the health check.
type HealthResponse struct {
	Body HealthData
}

// VersionData represents application version information.
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2026-01-15T10:00:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/amd64" doc:"Build platform"`
}

// VersionResponse represents the HTTP response for version information.
type VersionResponse struct {
	Body VersionData
}

// EncodingsData lists what the active registry can currently handle.
type EncodingsData struct {
	Encodings []string `json:"encodings" example:"[\"h264\",\"vp8\"]" doc:"Encodings with at least one encoder"`
	Decodings []string `json:"decodings" example:"[\"h264\"]" doc:"Encodings with at least one decoder"`
	CSCInputs []string `json:"csc_inputs" example:"[\"BGRX\"]" doc:"Colorspaces with at least one conversion"`
}

// EncodingsResponse represents the HTTP response for encoding enumeration.
type EncodingsResponse struct {
	Body EncodingsData
}

// CapabilitiesData is a full snapshot of the registry tables and module
// statuses. Table keys use the "input_to_output" form.
type CapabilitiesData struct {
	Encoding map[string][]string `json:"encoding" doc:"Encoder table: colorspace to encoding pairs with module names"`
	CSC      map[string][]string `json:"csc" doc:"Conversion table: colorspace pairs with module names"`
	Decoding map[string][]string `json:"decoding" doc:"Decoder table: encoding to colorspace pairs with module names"`

	Encoders   map[string]string `json:"encoders" doc:"Default encoder modules and their status"`
	Converters map[string]string `json:"converters" doc:"Default conversion modules and their status"`
	Decoders   map[string]string `json:"decoders" doc:"Default decoder modules and their status"`
}

// CapabilitiesResponse represents the HTTP response for the capability snapshot.
type CapabilitiesResponse struct {
	Body CapabilitiesData
}

// NegotiateRequest describes a peer's decode-side capabilities.
type NegotiateRequest struct {
	Colorspaces []string `json:"colorspaces" example:"[\"YUV420P\",\"YUV444P\"]" doc:"Colorspaces the peer can consume"`
	RGB         bool     `json:"rgb" example:"false" doc:"Treat colorspaces as final RGB formats and extend the set through one conversion hop"`
}

// NegotiateData maps each usable encoding to the input colorspaces the
// local side may encode with for this peer.
type NegotiateData struct {
	Encodings map[string][]string `json:"encodings" doc:"Viable input colorspaces per encoding"`
	Count     int                 `json:"count" example:"2" doc:"Number of usable encodings"`
}

// NegotiateResponse represents the HTTP response for a negotiation query.
type NegotiateResponse struct {
	Body NegotiateData
}
