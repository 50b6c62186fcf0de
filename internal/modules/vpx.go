package modules

import "github.com/screenway/vidcaps/internal/codec"

// vpx: libvpx-style VP8/VP9 module, both encoder and decoder. VP9 adds
// full-chroma support; the decoder output colorspace mirrors the input.

func vpxDecl() decl {
	return decl{
		order: []string{codec.VP8, codec.VP9},
		inner: map[string][]string{
			codec.VP8: {codec.YUV420P},
			codec.VP9: {codec.YUV420P, codec.YUV444P},
		},
	}
}

type vpxEncoder struct {
	decl decl
}

func newVPXEncoder() (codec.EncoderModule, error) {
	return &vpxEncoder{decl: vpxDecl()}, nil
}

func (m *vpxEncoder) CodecType() string { return "vpx" }

func (m *vpxEncoder) Teardown() error { return nil }

func (m *vpxEncoder) Encodings() []codec.Encoding {
	return m.decl.outerFormats()
}

func (m *vpxEncoder) InputColorspaces(encoding codec.Encoding) []codec.Colorspace {
	return m.decl.innerFormats(encoding)
}

func (m *vpxEncoder) Spec(encoding codec.Encoding, colorspace codec.Colorspace) (codec.Spec, error) {
	if !m.decl.declares(encoding, colorspace) {
		return nil, undeclaredPair(m.CodecType(), encoding, colorspace)
	}
	quality := 75
	if encoding == codec.VP9 {
		quality = 85
	}
	return codec.BaseSpec{Type: m.CodecType(), QualityScore: quality, SpeedScore: 50}, nil
}

type vpxDecoder struct {
	decl decl
}

func newVPXDecoder() (codec.DecoderModule, error) {
	return &vpxDecoder{decl: vpxDecl()}, nil
}

func (m *vpxDecoder) CodecType() string { return "vpx" }

func (m *vpxDecoder) Teardown() error { return nil }

func (m *vpxDecoder) Encodings() []codec.Encoding {
	return m.decl.outerFormats()
}

func (m *vpxDecoder) InputColorspaces(encoding codec.Encoding) []codec.Colorspace {
	return m.decl.innerFormats(encoding)
}

func (m *vpxDecoder) OutputColorspace(encoding codec.Encoding, colorspace codec.Colorspace) codec.Colorspace {
	if !m.decl.declares(encoding, colorspace) {
		return ""
	}
	// libvpx decodes back to the colorspace the stream was encoded from
	return colorspace
}

func (m *vpxDecoder) CanDecode() bool { return true }

func init() {
	codec.RegisterEncoder("vpx", codec.EncoderFactory{New: newVPXEncoder})
	codec.RegisterDecoder("vpx", codec.DecoderFactory{New: newVPXDecoder})
}
