package codec

import (
	"fmt"
	"sync"
)

// Loader resolves module names to loaded handles. Probe answers "is the
// backing implementation present" without loading; the Load methods invoke
// the module factory and may fail.
type Loader interface {
	// Probe reports whether the named module of the given kind is
	// available. Side-effect-free; never panics. Results are memoized.
	Probe(kind Kind, name string) bool

	LoadEncoder(name string) (EncoderModule, error)
	LoadConverter(name string) (ConverterModule, error)
	LoadDecoder(name string) (DecoderModule, error)
}

// EncoderFactory builds a loadable encoder module. Probe is optional: nil
// means the module is available whenever the factory is registered.
type EncoderFactory struct {
	Probe func() bool
	New   func() (EncoderModule, error)
}

// ConverterFactory builds a loadable colorspace conversion module.
type ConverterFactory struct {
	Probe func() bool
	New   func() (ConverterModule, error)
}

// DecoderFactory builds a loadable decoder module.
type DecoderFactory struct {
	Probe func() bool
	New   func() (DecoderModule, error)
}

// FactoryLoader is a Loader backed by registered factory functions. Modules
// compiled into the binary register themselves at init time; a test can
// build its own FactoryLoader with whatever fakes it needs.
type FactoryLoader struct {
	mu         sync.Mutex
	encoders   map[string]EncoderFactory
	converters map[string]ConverterFactory
	decoders   map[string]DecoderFactory
	probed     map[string]bool
}

// NewFactoryLoader creates an empty loader.
func NewFactoryLoader() *FactoryLoader {
	return &FactoryLoader{
		encoders:   make(map[string]EncoderFactory),
		converters: make(map[string]ConverterFactory),
		decoders:   make(map[string]DecoderFactory),
		probed:     make(map[string]bool),
	}
}

// RegisterEncoder registers an encoder factory under the given name.
// Registering the same name twice keeps the last factory.
func (l *FactoryLoader) RegisterEncoder(name string, f EncoderFactory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.encoders[name] = f
	delete(l.probed, probeKey(KindEncoder, name))
}

// RegisterConverter registers a CSC module factory under the given name.
func (l *FactoryLoader) RegisterConverter(name string, f ConverterFactory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.converters[name] = f
	delete(l.probed, probeKey(KindConverter, name))
}

// RegisterDecoder registers a decoder factory under the given name.
func (l *FactoryLoader) RegisterDecoder(name string, f DecoderFactory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decoders[name] = f
	delete(l.probed, probeKey(KindDecoder, name))
}

func probeKey(kind Kind, name string) string {
	return string(kind) + "/" + name
}

// Probe implements Loader. A module probes true when a factory is
// registered and its own probe (if any) succeeds. Results are memoized so
// repeated catalog computations stay cheap.
func (l *FactoryLoader) Probe(kind Kind, name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := probeKey(kind, name)
	if ok, seen := l.probed[key]; seen {
		return ok
	}

	var probe func() bool
	var registered bool
	switch kind {
	case KindEncoder:
		var f EncoderFactory
		f, registered = l.encoders[name]
		probe = f.Probe
	case KindConverter:
		var f ConverterFactory
		f, registered = l.converters[name]
		probe = f.Probe
	case KindDecoder:
		var f DecoderFactory
		f, registered = l.decoders[name]
		probe = f.Probe
	}

	ok := registered
	if ok && probe != nil {
		ok = safeProbe(probe)
	}
	l.probed[key] = ok
	return ok
}

// safeProbe isolates a panicking probe; any failure means "not available".
func safeProbe(probe func() bool) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return probe()
}

// LoadEncoder implements Loader.
func (l *FactoryLoader) LoadEncoder(name string) (EncoderModule, error) {
	l.mu.Lock()
	f, ok := l.encoders[name]
	l.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("encoder module %q is not registered", name)
	}
	return f.New()
}

// LoadConverter implements Loader.
func (l *FactoryLoader) LoadConverter(name string) (ConverterModule, error) {
	l.mu.Lock()
	f, ok := l.converters[name]
	l.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("csc module %q is not registered", name)
	}
	return f.New()
}

// LoadDecoder implements Loader.
func (l *FactoryLoader) LoadDecoder(name string) (DecoderModule, error) {
	l.mu.Lock()
	f, ok := l.decoders[name]
	l.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("decoder module %q is not registered", name)
	}
	return f.New()
}

// Installed reports whether the named module actually loads, not just
// probes. Used for the summary's "installed defaults" check: a module can
// probe available yet still fail at load time. The trial handle is torn
// down immediately.
func Installed(l Loader, kind Kind, name string) bool {
	var mod Module
	var err error
	switch kind {
	case KindEncoder:
		mod, err = l.LoadEncoder(name)
	case KindConverter:
		mod, err = l.LoadConverter(name)
	case KindDecoder:
		mod, err = l.LoadDecoder(name)
	default:
		return false
	}
	if err != nil || mod == nil {
		return false
	}
	_ = mod.Teardown()
	return true
}

// defaultLoader holds the factories of modules compiled into the binary.
var defaultLoader = NewFactoryLoader()

// Default returns the process-wide loader that builtin modules register
// into at init time.
func Default() *FactoryLoader { return defaultLoader }

// RegisterEncoder registers an encoder factory with the default loader.
func RegisterEncoder(name string, f EncoderFactory) {
	defaultLoader.RegisterEncoder(name, f)
}

// RegisterConverter registers a CSC factory with the default loader.
func RegisterConverter(name string, f ConverterFactory) {
	defaultLoader.RegisterConverter(name, f)
}

// RegisterDecoder registers a decoder factory with the default loader.
func RegisterDecoder(name string, f DecoderFactory) {
	defaultLoader.RegisterDecoder(name, f)
}
