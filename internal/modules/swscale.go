package modules

import "github.com/screenway/vidcaps/internal/codec"

// swscale: the broadest converter, any-to-any across the planar YUV and
// RGB-family formats. Slower than libyuv, kept as the fallback path.
type swscaleConverter struct {
	decl decl
}

func newSwscale() (codec.ConverterModule, error) {
	formats := []string{codec.YUV420P, codec.YUV422P, codec.YUV444P, codec.BGRX, codec.RGB}
	inner := make(map[string][]string, len(formats))
	for _, in := range formats {
		outs := make([]string, 0, len(formats)-1)
		for _, out := range formats {
			if out != in {
				outs = append(outs, out)
			}
		}
		inner[in] = outs
	}
	return &swscaleConverter{decl: decl{order: formats, inner: inner}}, nil
}

func (m *swscaleConverter) CodecType() string { return "swscale" }

func (m *swscaleConverter) Teardown() error { return nil }

func (m *swscaleConverter) InputColorspaces() []codec.Colorspace {
	return m.decl.outerFormats()
}

func (m *swscaleConverter) OutputColorspaces(in codec.Colorspace) []codec.Colorspace {
	return m.decl.innerFormats(in)
}

func (m *swscaleConverter) Spec(in, out codec.Colorspace) (codec.Spec, error) {
	if !m.decl.declares(in, out) {
		return nil, undeclaredPair(m.CodecType(), in, out)
	}
	return codec.BaseSpec{Type: m.CodecType(), QualityScore: 100, SpeedScore: 40}, nil
}

func init() {
	codec.RegisterConverter("swscale", codec.ConverterFactory{New: newSwscale})
}
