package modules

import (
	"reflect"
	"slices"
	"sort"
	"testing"

	"github.com/screenway/vidcaps/internal/codec"
	"github.com/screenway/vidcaps/internal/registry"
)

func TestBuiltinsProbe(t *testing.T) {
	l := codec.Default()

	for _, tc := range []struct {
		kind codec.Kind
		name string
		want bool
	}{
		{codec.KindEncoder, "x264", true},
		{codec.KindEncoder, "vpx", true},
		{codec.KindEncoder, "nvenc", false}, // no native binding in this build
		{codec.KindConverter, "libyuv", true},
		{codec.KindConverter, "swscale", true},
		{codec.KindConverter, "cython", false},
		{codec.KindDecoder, "openh264", true},
		{codec.KindDecoder, "vpx", true},
		{codec.KindDecoder, "avcodec", false},
	} {
		if got := l.Probe(tc.kind, tc.name); got != tc.want {
			t.Errorf("Probe(%s, %s) = %v, want %v", tc.kind, tc.name, got, tc.want)
		}
	}
}

func TestSystemCatalog(t *testing.T) {
	c := codec.SystemCatalog()
	if !slices.Contains(c.Encoders, "x264") || !slices.Contains(c.Encoders, "vpx") {
		t.Errorf("Expected x264 and vpx in encoder catalog, got %v", c.Encoders)
	}
	if slices.Contains(c.Encoders, "nvenc") {
		t.Errorf("Expected nvenc absent from catalog, got %v", c.Encoders)
	}
	if !slices.Contains(c.Decoders, "openh264") {
		t.Errorf("Expected openh264 in decoder catalog, got %v", c.Decoders)
	}
}

func TestRegistryOverBuiltins(t *testing.T) {
	r := registry.New(codec.SystemCatalog(), codec.Default())
	if err := r.SelectModules([]string{"all"}, []string{"all"}, []string{"all"}); err != nil {
		t.Fatalf("SelectModules failed: %v", err)
	}
	r.Init()
	defer r.Cleanup()

	encodings := r.Encodings()
	sort.Strings(encodings)
	if !reflect.DeepEqual(encodings, []string{codec.H264, codec.VP8, codec.VP9}) {
		t.Errorf("Expected encodings [h264 vp8 vp9], got %v", encodings)
	}

	// both converters feed the BGRX input
	if got := len(r.CSCSpecs(codec.BGRX)[codec.YUV420P]); got != 2 {
		t.Errorf("Expected 2 csc specs for BGRX->YUV420P, got %d", got)
	}
}

func TestNegotiateOverBuiltins(t *testing.T) {
	r := registry.New(codec.SystemCatalog(), codec.Default())
	if err := r.SelectModules([]string{"all"}, []string{"all"}, []string{"all"}); err != nil {
		t.Fatalf("SelectModules failed: %v", err)
	}
	r.Init()
	defer r.Cleanup()

	got := r.ResolveByColorspace([]codec.Colorspace{codec.YUV420P})
	want := map[codec.Encoding][]codec.Colorspace{
		codec.H264: {codec.YUV420P, codec.YUV422P},
		codec.VP8:  {codec.YUV420P},
		codec.VP9:  {codec.YUV420P},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveByColorspace({YUV420P}) = %v, want %v", got, want)
	}

	// declaring only RGB reaches everything swscale can convert to RGB
	got = r.ResolveByRGB([]codec.Colorspace{codec.RGB})
	want = map[codec.Encoding][]codec.Colorspace{
		codec.H264: {codec.YUV420P, codec.YUV422P},
		codec.VP8:  {codec.YUV420P},
		codec.VP9:  {codec.YUV420P, codec.YUV444P},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveByRGB({RGB}) = %v, want %v", got, want)
	}
}

func TestDeclTable(t *testing.T) {
	d := decl{
		order: []string{"a", "b"},
		inner: map[string][]string{"a": {"x"}, "b": {"y", "z"}},
	}
	if !reflect.DeepEqual(d.outerFormats(), []string{"a", "b"}) {
		t.Errorf("outerFormats = %v", d.outerFormats())
	}
	if !d.declares("b", "z") || d.declares("a", "z") {
		t.Error("declares() gave wrong answers")
	}
	// returned slices are copies
	outer := d.outerFormats()
	outer[0] = "mutated"
	if d.order[0] != "a" {
		t.Error("outerFormats leaked internal slice")
	}
}
