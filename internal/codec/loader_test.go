package codec

import (
	"errors"
	"testing"
)

var errUnavailable = errors.New("module unavailable")

type stubEncoder struct{ name string }

func (m *stubEncoder) CodecType() string                           { return m.name }
func (m *stubEncoder) Teardown() error                             { return nil }
func (m *stubEncoder) Encodings() []Encoding                       { return []Encoding{H264} }
func (m *stubEncoder) InputColorspaces(Encoding) []Colorspace      { return []Colorspace{YUV420P} }
func (m *stubEncoder) Spec(e Encoding, c Colorspace) (Spec, error) {
	return BaseSpec{Type: m.name}, nil
}

func TestProbeUnregistered(t *testing.T) {
	l := NewFactoryLoader()
	if l.Probe(KindEncoder, "missing") {
		t.Error("Expected unregistered module to probe false")
	}
}

func TestProbeRegistered(t *testing.T) {
	l := NewFactoryLoader()
	l.RegisterEncoder("stub", EncoderFactory{
		New: func() (EncoderModule, error) { return &stubEncoder{name: "stub"}, nil },
	})
	if !l.Probe(KindEncoder, "stub") {
		t.Error("Expected registered module to probe true")
	}
	// same name, different kind
	if l.Probe(KindDecoder, "stub") {
		t.Error("Expected decoder probe of an encoder name to be false")
	}
}

func TestProbeMemoized(t *testing.T) {
	l := NewFactoryLoader()
	calls := 0
	l.RegisterEncoder("counting", EncoderFactory{
		Probe: func() bool {
			calls++
			return true
		},
		New: func() (EncoderModule, error) { return &stubEncoder{name: "counting"}, nil },
	})

	l.Probe(KindEncoder, "counting")
	l.Probe(KindEncoder, "counting")
	l.Probe(KindEncoder, "counting")
	if calls != 1 {
		t.Errorf("Expected probe called once, got %d", calls)
	}
}

func TestProbePanicMeansUnavailable(t *testing.T) {
	l := NewFactoryLoader()
	l.RegisterEncoder("explosive", EncoderFactory{
		Probe: func() bool { panic("probe blew up") },
		New:   func() (EncoderModule, error) { return &stubEncoder{name: "explosive"}, nil },
	})
	if l.Probe(KindEncoder, "explosive") {
		t.Error("Expected panicking probe to report unavailable")
	}
}

func TestLoadUnregistered(t *testing.T) {
	l := NewFactoryLoader()
	if _, err := l.LoadEncoder("missing"); err == nil {
		t.Error("Expected error loading unregistered encoder")
	}
	if _, err := l.LoadConverter("missing"); err == nil {
		t.Error("Expected error loading unregistered converter")
	}
	if _, err := l.LoadDecoder("missing"); err == nil {
		t.Error("Expected error loading unregistered decoder")
	}
}

func TestInstalled(t *testing.T) {
	l := NewFactoryLoader()
	l.RegisterEncoder("ok", EncoderFactory{
		New: func() (EncoderModule, error) { return &stubEncoder{name: "ok"}, nil },
	})
	l.RegisterEncoder("bad", EncoderFactory{
		New: func() (EncoderModule, error) { return nil, errors.New("no library") },
	})

	if !Installed(l, KindEncoder, "ok") {
		t.Error("Expected ok module to be installed")
	}
	if Installed(l, KindEncoder, "bad") {
		t.Error("Expected failing module to not be installed")
	}
	if Installed(l, Kind("bogus"), "ok") {
		t.Error("Expected unknown kind to not be installed")
	}
}
