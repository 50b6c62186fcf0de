// Package codec defines the vocabulary shared by all video codec modules:
// format identifiers, capability specs, and the contracts a module must
// implement to be discovered by the registry.
package codec

// Encoding names a compressed video format produced by an encoder module,
// e.g. "h264" or "vp9". It is an opaque token, only compared for equality.
type Encoding = string

// Colorspace names a pixel/frame layout consumed or produced by a module,
// e.g. "YUV420P" or "BGRX". Opaque, only compared for equality.
type Colorspace = string

// Spec is a capability descriptor a module returns for one specific format
// transition. The registry stores and enumerates specs without inspecting
// anything beyond the codec type tag; the metadata is for callers picking
// between competing modules.
type Spec interface {
	// CodecType identifies the producing module, e.g. "x264".
	CodecType() string

	// Quality scores output quality for this transition, 0-100.
	Quality() int

	// Speed scores encoding/conversion speed for this transition, 0-100.
	Speed() int

	// ScoreBoost is an additive bias modules use to promote themselves
	// for a transition, e.g. hardware paths. Usually zero.
	ScoreBoost() int
}

// BaseSpec is a plain-value Spec implementation. Modules embed or return it
// directly unless they need lazily computed metadata.
type BaseSpec struct {
	Type         string
	QualityScore int
	SpeedScore   int
	Boost        int
}

func (s BaseSpec) CodecType() string { return s.Type }
func (s BaseSpec) Quality() int      { return s.QualityScore }
func (s BaseSpec) Speed() int        { return s.SpeedScore }
func (s BaseSpec) ScoreBoost() int   { return s.Boost }
