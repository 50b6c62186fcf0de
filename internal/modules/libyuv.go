package modules

import "github.com/screenway/vidcaps/internal/codec"

// libyuv: fast downsampling converter. RGB-family input to planar YUV
// output only, it does not convert back.
type libyuvConverter struct {
	decl decl
}

func newLibyuv() (codec.ConverterModule, error) {
	return &libyuvConverter{
		decl: decl{
			order: []string{codec.BGRX, codec.NV12},
			inner: map[string][]string{
				codec.BGRX: {codec.YUV420P, codec.YUV444P},
				codec.NV12: {codec.YUV420P},
			},
		},
	}, nil
}

func (m *libyuvConverter) CodecType() string { return "libyuv" }

func (m *libyuvConverter) Teardown() error { return nil }

func (m *libyuvConverter) InputColorspaces() []codec.Colorspace {
	return m.decl.outerFormats()
}

func (m *libyuvConverter) OutputColorspaces(in codec.Colorspace) []codec.Colorspace {
	return m.decl.innerFormats(in)
}

func (m *libyuvConverter) Spec(in, out codec.Colorspace) (codec.Spec, error) {
	if !m.decl.declares(in, out) {
		return nil, undeclaredPair(m.CodecType(), in, out)
	}
	return codec.BaseSpec{Type: m.CodecType(), QualityScore: 80, SpeedScore: 95}, nil
}

func init() {
	codec.RegisterConverter("libyuv", codec.ConverterFactory{New: newLibyuv})
}
