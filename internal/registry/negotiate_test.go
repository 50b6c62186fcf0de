package registry

import (
	"reflect"
	"testing"

	"github.com/screenway/vidcaps/internal/codec"
)

func TestResolveByColorspace(t *testing.T) {
	env := newTestEnv()
	r := env.registry()
	initAll(t, r)

	// dec1 decodes V1 from YUV420P and outputs RGB
	got := r.ResolveByColorspace([]codec.Colorspace{"RGB"})
	want := map[codec.Encoding][]codec.Colorspace{"V1": {"YUV420P"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveByColorspace({RGB}) = %v, want %v", got, want)
	}
}

func TestResolveByColorspaceNoMatch(t *testing.T) {
	env := newTestEnv()
	r := env.registry()
	initAll(t, r)

	got := r.ResolveByColorspace([]codec.Colorspace{"RGB2"})
	if len(got) != 0 {
		t.Errorf("Expected empty result for non-matching peer set, got %v", got)
	}
}

func TestResolveByColorspaceDeduplicates(t *testing.T) {
	env := newTestEnv()
	r := env.registry()
	initAll(t, r)

	// a second decoder for the same (encoding, colorspace) pair must not
	// duplicate the colorspace in the result
	second := &fakeDecoder{
		codecType: "dec2",
		output: func(codec.Encoding, codec.Colorspace) codec.Colorspace {
			return "RGB"
		},
		canDecode: true,
	}
	r.AddDecoder("V1", "YUV420P", DecoderEntry{Name: "dec2", Module: second})

	got := r.ResolveByColorspace([]codec.Colorspace{"RGB"})
	if !reflect.DeepEqual(got["V1"], []codec.Colorspace{"YUV420P"}) {
		t.Errorf("Expected deduplicated [YUV420P], got %v", got["V1"])
	}
}

func TestResolveByColorspaceDynamicOutput(t *testing.T) {
	env := newTestEnv()
	// output colorspace depends on the exact (encoding, input) pair
	env.dec.order = []codec.Encoding{"V1", "V2"}
	env.dec.decl = map[codec.Encoding][]codec.Colorspace{
		"V1": {"YUV420P"},
		"V2": {"YUV420P", "YUV444P"},
	}
	env.dec.output = func(encoding codec.Encoding, colorspace codec.Colorspace) codec.Colorspace {
		if encoding == "V2" && colorspace == "YUV444P" {
			return "RGB"
		}
		return "YUV420P"
	}

	r := env.registry()
	initAll(t, r)
	got := r.ResolveByColorspace([]codec.Colorspace{"RGB"})
	want := map[codec.Encoding][]codec.Colorspace{"V2": {"YUV444P"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveByColorspace({RGB}) = %v, want %v", got, want)
	}
}

func TestResolveByRGBExtendsViaCSC(t *testing.T) {
	env := newTestEnv()
	// decoder keyed on YUV444P whose output only a csc hop away from RGB
	env.dec.decl = map[codec.Encoding][]codec.Colorspace{
		"V1": {"YUV444P"},
	}
	env.dec.output = func(codec.Encoding, codec.Colorspace) codec.Colorspace {
		return "YUV444P"
	}

	r := env.registry()
	initAll(t, r)

	// plain colorspace resolution misses it
	if got := r.ResolveByColorspace([]codec.Colorspace{"RGB"}); len(got) != 0 {
		t.Fatalf("Expected no direct match, got %v", got)
	}

	// the csc table maps YUV444P -> RGB, so the RGB query reaches it
	got := r.ResolveByRGB([]codec.Colorspace{"RGB"})
	want := map[codec.Encoding][]codec.Colorspace{"V1": {"YUV444P"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveByRGB({RGB}) = %v, want %v", got, want)
	}
}

func TestResolveByRGBIgnoresUnrelatedCSC(t *testing.T) {
	env := newTestEnv()
	r := env.registry()
	initAll(t, r)

	// BGRX converts to YUV420P, not to a requested RGB mode; it must not
	// widen the peer set
	got := r.ResolveByRGB([]codec.Colorspace{"RGB"})
	want := map[codec.Encoding][]codec.Colorspace{"V1": {"YUV420P"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveByRGB({RGB}) = %v, want %v", got, want)
	}
}

func TestResolveDoesNotMutate(t *testing.T) {
	env := newTestEnv()
	r := env.registry()
	initAll(t, r)

	before := r.Summary()
	r.ResolveByColorspace([]codec.Colorspace{"RGB"})
	r.ResolveByRGB([]codec.Colorspace{"RGB"})
	after := r.Summary()

	if !reflect.DeepEqual(before.Encoding, after.Encoding) ||
		!reflect.DeepEqual(before.CSC, after.CSC) ||
		!reflect.DeepEqual(before.Decoding, after.Decoding) {
		t.Error("Negotiation queries mutated registry tables")
	}
}
