package modules

import "github.com/screenway/vidcaps/internal/codec"

// openh264: H.264 decoder. Whatever subsampling the stream carries, the
// decoder emits 4:2:0 planar output.
type openh264Decoder struct {
	decl decl
}

func newOpenH264() (codec.DecoderModule, error) {
	return &openh264Decoder{
		decl: decl{
			order: []string{codec.H264},
			inner: map[string][]string{
				codec.H264: {codec.YUV420P, codec.YUV422P},
			},
		},
	}, nil
}

func (m *openh264Decoder) CodecType() string { return "openh264" }

func (m *openh264Decoder) Teardown() error { return nil }

func (m *openh264Decoder) Encodings() []codec.Encoding {
	return m.decl.outerFormats()
}

func (m *openh264Decoder) InputColorspaces(encoding codec.Encoding) []codec.Colorspace {
	return m.decl.innerFormats(encoding)
}

func (m *openh264Decoder) OutputColorspace(encoding codec.Encoding, colorspace codec.Colorspace) codec.Colorspace {
	if !m.decl.declares(encoding, colorspace) {
		return ""
	}
	return codec.YUV420P
}

func (m *openh264Decoder) CanDecode() bool { return true }

func init() {
	codec.RegisterDecoder("openh264", codec.DecoderFactory{New: newOpenH264})
}
