package registry

import (
	"slices"

	"github.com/screenway/vidcaps/internal/codec"
	"github.com/screenway/vidcaps/internal/obs"
)

// ResolveByColorspace computes, for a set of colorspaces the peer can
// consume, the input colorspaces per encoding the local side can encode
// with such that the peer's decode step lands in its declared set. Each
// decoder entry is asked for its actual output colorspace for the exact
// (encoding, input colorspace) combination.
//
// The result covers only encodings with at least one viable colorspace;
// colorspace lists are deduplicated in first-seen order. Read-only and
// deterministic for a fixed registry.
func (r *Registry) ResolveByColorspace(peerColorspaces []codec.Colorspace) map[codec.Encoding][]codec.Colorspace {
	obs.NegotiationQueries.WithLabelValues("colorspace").Inc()
	return r.resolveByColorspace(peerColorspaces)
}

func (r *Registry) resolveByColorspace(peerColorspaces []codec.Colorspace) map[codec.Encoding][]codec.Colorspace {
	peer := make(map[codec.Colorspace]struct{}, len(peerColorspaces))
	for _, cs := range peerColorspaces {
		peer[cs] = struct{}{}
	}

	out := make(map[codec.Encoding][]codec.Colorspace)
	for encoding, byCS := range r.decoderSpecs {
		colorspaces := make([]codec.Colorspace, 0, len(byCS))
		for cs := range byCS {
			colorspaces = append(colorspaces, cs)
		}
		slices.Sort(colorspaces)
		for _, colorspace := range colorspaces {
			for _, entry := range byCS[colorspace] {
				actual := entry.Module.OutputColorspace(encoding, colorspace)
				r.logger.Debug("decoder output resolved",
					"decoder", entry.Name, "encoding", encoding,
					"colorspace", colorspace, "output", actual)
				if _, ok := peer[actual]; !ok {
					continue
				}
				if !slices.Contains(out[encoding], colorspace) {
					out[encoding] = append(out[encoding], colorspace)
				}
			}
		}
	}
	return out
}

// ResolveByRGB is ResolveByColorspace for peers that only declare final
// RGB-family capabilities. The effective peer set is extended with every
// CSC input colorspace that converts, in one module hop, into one of the
// declared RGB formats, so encodings reachable through an intermediate
// conversion step still surface.
func (r *Registry) ResolveByRGB(targetRGBModes []codec.Colorspace) map[codec.Encoding][]codec.Colorspace {
	obs.NegotiationQueries.WithLabelValues("rgb").Inc()

	supported := slices.Clone(targetRGBModes)
	for in, byOut := range r.cscSpecs {
		for out, specs := range byOut {
			if len(specs) > 0 && slices.Contains(targetRGBModes, out) {
				supported = append(supported, in)
				break
			}
		}
	}
	slices.Sort(supported)
	supported = slices.Compact(supported)
	return r.resolveByColorspace(supported)
}
