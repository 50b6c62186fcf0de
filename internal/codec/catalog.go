package codec

import "sync"

// All the modules this build knows about. A name appearing here does not
// mean the module is usable on this machine; the catalog filters these
// through the loader's probe. Hardware modules like nvenc only probe true
// when their build tag compiled a factory in.
var (
	knownEncoders   = []string{"x264", "vpx", "nvenc"}
	knownConverters = []string{"libyuv", "swscale", "cython"}
	knownDecoders   = []string{"openh264", "vpx", "avcodec"}
)

// Preferred orders are exposed for callers that rank modules; the registry
// itself keeps declaration order.
var (
	PreferredEncoderOrder = []string{"nvenc", "x264", "vpx"}
	PreferredDecoderOrder = []string{"avcodec", "openh264", "vpx"}
)

// Known returns every module name this build knows about for the given
// kind, available or not.
func Known(kind Kind) []string {
	switch kind {
	case KindEncoder:
		return knownEncoders
	case KindConverter:
		return knownConverters
	case KindDecoder:
		return knownDecoders
	}
	return nil
}

// Catalog is the fixed per-process view of which known modules are present,
// per category. Immutable once computed.
type Catalog struct {
	Encoders   []string
	Converters []string
	Decoders   []string
}

// NewCatalog probes every known module through the given loader and keeps
// the available ones, preserving the known-module order.
func NewCatalog(l Loader) Catalog {
	return Catalog{
		Encoders:   probeFilter(l, KindEncoder, knownEncoders),
		Converters: probeFilter(l, KindConverter, knownConverters),
		Decoders:   probeFilter(l, KindDecoder, knownDecoders),
	}
}

func probeFilter(l Loader, kind Kind, known []string) []string {
	out := make([]string, 0, len(known))
	for _, name := range known {
		if l.Probe(kind, name) {
			out = append(out, name)
		}
	}
	return out
}

// Names returns the catalog list for the given module kind.
func (c Catalog) Names(kind Kind) []string {
	switch kind {
	case KindEncoder:
		return c.Encoders
	case KindConverter:
		return c.Converters
	case KindDecoder:
		return c.Decoders
	}
	return nil
}

// InstalledDefaults re-checks which catalog modules of the given kind
// actually load right now. Unlike the catalog itself this is recomputed on
// every call; the summary uses it to tell "disabled" from "not found".
func (c Catalog) InstalledDefaults(l Loader, kind Kind) []string {
	names := c.Names(kind)
	out := make([]string, 0, len(names))
	for _, name := range names {
		if Installed(l, kind, name) {
			out = append(out, name)
		}
	}
	return out
}

var (
	systemCatalogOnce sync.Once
	systemCatalog     Catalog
)

// SystemCatalog returns the process-wide catalog over the default loader,
// computed on first use.
func SystemCatalog() Catalog {
	systemCatalogOnce.Do(func() {
		systemCatalog = NewCatalog(defaultLoader)
	})
	return systemCatalog
}
