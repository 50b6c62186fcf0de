package registry

import (
	"slices"

	"github.com/screenway/vidcaps/internal/codec"
)

// ModuleStatus classifies a catalog module in a summary report.
type ModuleStatus string

const (
	// StatusActive: the module is in the enabled list.
	StatusActive ModuleStatus = "active"
	// StatusDisabled: the module loads on this machine but was not
	// enabled.
	StatusDisabled ModuleStatus = "disabled"
	// StatusNotFound: the module is known but does not load here.
	StatusNotFound ModuleStatus = "not-found"
)

// Summary is a structured report of everything the registry discovered.
// Transition keys read "in_to_out", e.g. "YUV420P_to_h264".
type Summary struct {
	// Encoding maps "colorspace_to_encoding" to producing codec types.
	Encoding map[string][]string `json:"encoding"`
	// CSC maps "in_to_out" to converting codec types.
	CSC map[string][]string `json:"csc"`
	// Decoding maps "encoding_to_colorspace" to decoder names.
	Decoding map[string][]string `json:"decoding"`

	Encoders   map[string]ModuleStatus `json:"encoders"`
	Converters map[string]ModuleStatus `json:"converters"`
	Decoders   map[string]ModuleStatus `json:"decoders"`
}

// Summary builds the capability report, including a status for every
// catalog module computed against the enabled lists and a fresh check of
// which modules actually load right now.
func (r *Registry) Summary() Summary {
	s := Summary{
		Encoding:   make(map[string][]string),
		CSC:        make(map[string][]string),
		Decoding:   make(map[string][]string),
		Encoders:   make(map[string]ModuleStatus),
		Converters: make(map[string]ModuleStatus),
		Decoders:   make(map[string]ModuleStatus),
	}

	for encoding, byCS := range r.encoderSpecs {
		for colorspace, specs := range byCS {
			key := colorspace + "_to_" + encoding
			for _, spec := range specs {
				s.Encoding[key] = append(s.Encoding[key], spec.CodecType())
			}
		}
	}
	for in, byOut := range r.cscSpecs {
		for out, specs := range byOut {
			key := in + "_to_" + out
			types := make([]string, 0, len(specs))
			for _, spec := range specs {
				types = append(types, spec.CodecType())
			}
			s.CSC[key] = types
		}
	}
	for encoding, byCS := range r.decoderSpecs {
		for colorspace, entries := range byCS {
			key := encoding + "_to_" + colorspace
			for _, entry := range entries {
				s.Decoding[key] = append(s.Decoding[key], entry.Name)
			}
		}
	}

	s.Encoders = r.moduleStatuses(codec.KindEncoder, r.videoEncoders)
	s.Converters = r.moduleStatuses(codec.KindConverter, r.cscModules)
	s.Decoders = r.moduleStatuses(codec.KindDecoder, r.videoDecoders)
	return s
}

func (r *Registry) moduleStatuses(kind codec.Kind, active []string) map[string]ModuleStatus {
	installed := r.catalog.InstalledDefaults(r.loader, kind)

	// Catalog names plus known names that failed their probe, so a build
	// that knows a module reports it even when it is absent here.
	names := slices.Clone(r.catalog.Names(kind))
	for _, name := range codec.Known(kind) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	out := make(map[string]ModuleStatus)
	for _, name := range names {
		switch {
		case slices.Contains(active, name):
			out[name] = StatusActive
		case slices.Contains(installed, name):
			out[name] = StatusDisabled
		default:
			out[name] = StatusNotFound
		}
	}
	return out
}
