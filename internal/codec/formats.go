package codec

// Colorspace tokens used by the builtin modules. The registry itself treats
// colorspaces as opaque strings; these constants just keep module
// declarations and tests consistent.
const (
	YUV420P Colorspace = "YUV420P"
	YUV422P Colorspace = "YUV422P"
	YUV444P Colorspace = "YUV444P"
	NV12    Colorspace = "NV12"
	BGRX    Colorspace = "BGRX"
	RGB     Colorspace = "RGB"
)

// Encoding tokens used by the builtin modules.
const (
	H264 Encoding = "h264"
	VP8  Encoding = "vp8"
	VP9  Encoding = "vp9"
)
