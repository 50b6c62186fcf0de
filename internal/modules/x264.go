package modules

import "github.com/screenway/vidcaps/internal/codec"

// x264: software H.264 encoder. High quality, moderate speed; planar YUV
// input only.
type x264Encoder struct {
	decl decl
}

func newX264() (codec.EncoderModule, error) {
	return &x264Encoder{
		decl: decl{
			order: []string{codec.H264},
			inner: map[string][]string{
				codec.H264: {codec.YUV420P, codec.YUV422P, codec.YUV444P},
			},
		},
	}, nil
}

func (m *x264Encoder) CodecType() string { return "x264" }

func (m *x264Encoder) Teardown() error { return nil }

func (m *x264Encoder) Encodings() []codec.Encoding {
	return m.decl.outerFormats()
}

func (m *x264Encoder) InputColorspaces(encoding codec.Encoding) []codec.Colorspace {
	return m.decl.innerFormats(encoding)
}

func (m *x264Encoder) Spec(encoding codec.Encoding, colorspace codec.Colorspace) (codec.Spec, error) {
	if !m.decl.declares(encoding, colorspace) {
		return nil, undeclaredPair(m.CodecType(), encoding, colorspace)
	}
	quality := 80
	if colorspace == codec.YUV444P {
		// full chroma, no subsampling loss
		quality = 90
	}
	return codec.BaseSpec{Type: m.CodecType(), QualityScore: quality, SpeedScore: 60}, nil
}

func init() {
	codec.RegisterEncoder("x264", codec.EncoderFactory{New: newX264})
}
