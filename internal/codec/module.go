package codec

// Kind separates the three module categories the registry tracks.
type Kind string

const (
	KindEncoder   Kind = "encoder"
	KindConverter Kind = "csc"
	KindDecoder   Kind = "decoder"
)

// Module is the part of a loaded codec module the registry lifecycle needs:
// an identity for reports and a teardown hook invoked on cleanup.
type Module interface {
	// CodecType returns the module's type name, e.g. "vpx".
	CodecType() string

	// Teardown releases whatever the module allocated at load time.
	// Called at most once per loaded handle.
	Teardown() error
}

// EncoderModule declares which encodings a module can produce and from
// which input colorspaces.
type EncoderModule interface {
	Module

	// Encodings lists the compressed formats this module can produce.
	Encodings() []Encoding

	// InputColorspaces lists the colorspaces accepted when producing the
	// given encoding.
	InputColorspaces(encoding Encoding) []Colorspace

	// Spec returns the capability descriptor for one (encoding, input
	// colorspace) pair the module declared.
	Spec(encoding Encoding, colorspace Colorspace) (Spec, error)
}

// ConverterModule declares which colorspace conversions a module supports.
type ConverterModule interface {
	Module

	// InputColorspaces lists the colorspaces this module can read.
	InputColorspaces() []Colorspace

	// OutputColorspaces lists the colorspaces reachable from the given
	// input colorspace.
	OutputColorspaces(in Colorspace) []Colorspace

	// Spec returns the capability descriptor for one (in, out) pair.
	Spec(in, out Colorspace) (Spec, error)
}

// DecoderModule declares which encodings a module can decode. Unlike the
// other two kinds the registry keeps the handle itself, because the actual
// output colorspace for a given (encoding, input colorspace) pair is only
// known by asking the loaded module.
type DecoderModule interface {
	Module

	// Encodings lists the compressed formats this module can decode.
	Encodings() []Encoding

	// InputColorspaces lists the colorspaces the given encoding may carry.
	InputColorspaces(encoding Encoding) []Colorspace

	// OutputColorspace resolves the colorspace the decoder actually
	// produces for the exact (encoding, input colorspace) combination.
	OutputColorspace(encoding Encoding, colorspace Colorspace) Colorspace

	// CanDecode reports whether the module can construct a working
	// decoder instance. Modules that only expose introspection return
	// false and are skipped during registry population.
	CanDecode() bool
}
