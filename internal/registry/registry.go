// Package registry indexes the capabilities of every usable codec module:
// which encodings the local side can produce, which colorspace conversions
// are available, and which encodings it can decode back. A populated
// registry answers negotiation queries for remote peers (see negotiate.go).
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/screenway/vidcaps/internal/codec"
	"github.com/screenway/vidcaps/internal/events"
	"github.com/screenway/vidcaps/internal/obs"
)

// ErrAlreadyInitialized is returned by SelectModules once initialization
// has begun; module selection is a pre-init, single-threaded step.
var ErrAlreadyInitialized = errors.New("registry: too late to select modules, already initialized")

// DecoderEntry pairs a decoder module name with its loaded handle. The
// handle is retained because the actual output colorspace for a given
// (encoding, input colorspace) pair can only be resolved by asking the
// module.
type DecoderEntry struct {
	Name   string
	Module codec.DecoderModule
}

// Registry owns the three capability tables and their lifecycle. One mutex
// guards the mutating operations (Init, Cleanup); all read accessors are
// lock-free and require a quiescent, initialized registry.
type Registry struct {
	mu          sync.Mutex
	initialized bool

	encoderSpecs table[codec.Spec]     // encoding -> input colorspace -> specs
	cscSpecs     table[codec.Spec]     // input colorspace -> output colorspace -> specs
	decoderSpecs table[DecoderEntry]   // encoding -> input colorspace -> entries

	videoEncoders []string
	cscModules    []string
	videoDecoders []string

	cleanupModules []codec.Module

	catalog codec.Catalog
	loader  codec.Loader
	logger  *slog.Logger
	bus     *events.Bus
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithEventBus attaches an event bus; the registry publishes module load
// and lifecycle events to it.
func WithEventBus(bus *events.Bus) Option {
	return func(r *Registry) {
		r.bus = bus
	}
}

// New creates an empty, uninitialized registry over the given catalog and
// loader.
func New(catalog codec.Catalog, loader codec.Loader, opts ...Option) *Registry {
	r := &Registry{
		encoderSpecs: make(table[codec.Spec]),
		cscSpecs:     make(table[codec.Spec]),
		decoderSpecs: make(table[DecoderEntry]),
		catalog:      catalog,
		loader:       loader,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SelectModules filters the requested module names against the catalog and
// records the result as the enabled lists for Init. "-name" excludes a
// module, "all" expands to the full catalog for that category, unknown
// names are warned about and dropped. Exclusions apply after expansion, so
// ["all", "-x264"] means every known encoder except x264.
//
// Only valid before initialization; afterwards it returns
// ErrAlreadyInitialized.
func (r *Registry) SelectModules(videoEncoders, cscModules, videoDecoders []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return ErrAlreadyInitialized
	}
	r.videoEncoders = r.filterSelection("video encoders", videoEncoders, r.catalog.Encoders)
	r.cscModules = r.filterSelection("csc modules", cscModules, r.catalog.Converters)
	r.videoDecoders = r.filterSelection("video decoders", videoDecoders, r.catalog.Decoders)
	r.logger.Debug("modules selected",
		"encoders", r.videoEncoders, "csc", r.cscModules, "decoders", r.videoDecoders)
	return nil
}

func (r *Registry) filterSelection(what string, selection, catalog []string) []string {
	var include, exclude []string
	for _, name := range selection {
		if name == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(name, "-"); ok {
			exclude = append(exclude, rest)
		} else {
			include = append(include, name)
		}
	}

	if slices.Contains(include, "all") {
		include = slices.Clone(catalog)
	} else {
		var unknown []string
		for _, name := range slices.Concat(exclude, include) {
			if name != "" && !slices.Contains(catalog, name) {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			r.logger.Warn("ignoring unknown "+what, "names", strings.Join(unknown, ", "))
		}
		include = slices.DeleteFunc(include, func(name string) bool {
			return !slices.Contains(catalog, name)
		})
	}

	out := make([]string, 0, len(include))
	for _, name := range include {
		if !slices.Contains(exclude, name) {
			out = append(out, name)
		}
	}
	return out
}

// Init loads every enabled module and records each format transition it
// declares. Idempotent: a second call is a no-op, and concurrent callers
// collapse to a single population pass. A module that fails to load or
// panics during introspection is logged and skipped; it contributes
// nothing to the tables.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return
	}
	r.initEncoders()
	r.initConverters()
	r.initDecoders()
	r.initialized = true
	r.updateTableMetrics()
	r.logger.Info("registry initialized",
		"encodings", len(r.encoderSpecs),
		"decodings", len(r.decoderSpecs),
		"csc_inputs", len(r.cscSpecs))
	if r.bus != nil {
		r.bus.Publish(events.RegistryInitializedEvent{
			Encodings: len(r.encoderSpecs),
			Decodings: len(r.decoderSpecs),
			CSCInputs: len(r.cscSpecs),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (r *Registry) initEncoders() {
	for _, name := range r.videoEncoders {
		err := r.guard(codec.KindEncoder, name, func() error {
			mod, err := r.loader.LoadEncoder(name)
			if err != nil {
				return err
			}
			r.cleanupModules = append(r.cleanupModules, mod)
			for _, encoding := range mod.Encodings() {
				for _, colorspace := range mod.InputColorspaces(encoding) {
					spec, specErr := mod.Spec(encoding, colorspace)
					if specErr != nil {
						r.logger.Warn("encoder spec unavailable",
							"module", name, "encoding", encoding,
							"colorspace", colorspace, "error", specErr)
						continue
					}
					r.AddEncoderSpec(encoding, colorspace, spec)
				}
			}
			r.moduleLoaded(codec.KindEncoder, name, mod.CodecType())
			return nil
		})
		if err != nil {
			r.moduleFailed(codec.KindEncoder, name, err)
		}
	}
}

func (r *Registry) initConverters() {
	for _, name := range r.cscModules {
		err := r.guard(codec.KindConverter, name, func() error {
			mod, err := r.loader.LoadConverter(name)
			if err != nil {
				return err
			}
			r.cleanupModules = append(r.cleanupModules, mod)
			for _, in := range mod.InputColorspaces() {
				for _, out := range mod.OutputColorspaces(in) {
					spec, specErr := mod.Spec(in, out)
					if specErr != nil {
						r.logger.Warn("csc spec unavailable",
							"module", name, "in", in, "out", out, "error", specErr)
						continue
					}
					r.AddCSCSpec(in, out, spec)
				}
			}
			r.moduleLoaded(codec.KindConverter, name, mod.CodecType())
			return nil
		})
		if err != nil {
			r.moduleFailed(codec.KindConverter, name, err)
		}
	}
}

func (r *Registry) initDecoders() {
	for _, name := range r.videoDecoders {
		err := r.guard(codec.KindDecoder, name, func() error {
			mod, err := r.loader.LoadDecoder(name)
			if err != nil {
				return err
			}
			r.cleanupModules = append(r.cleanupModules, mod)
			canDecode := mod.CanDecode()
			for _, encoding := range mod.Encodings() {
				for _, colorspace := range mod.InputColorspaces(encoding) {
					if !canDecode {
						// module loads and introspects, but cannot
						// construct decoders: skip the pair
						r.logger.Warn("failed to add decoder",
							"module", name, "encoding", encoding, "colorspace", colorspace)
						continue
					}
					r.AddDecoder(encoding, colorspace, DecoderEntry{Name: name, Module: mod})
				}
			}
			r.moduleLoaded(codec.KindDecoder, name, mod.CodecType())
			return nil
		})
		if err != nil {
			r.moduleFailed(codec.KindDecoder, name, err)
		}
	}
}

// guard isolates one module's load and introspection: a panic inside the
// module becomes an error for that module only.
func (r *Registry) guard(kind codec.Kind, name string, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s module %q panicked: %v", kind, name, rec)
		}
	}()
	return fn()
}

func (r *Registry) moduleLoaded(kind codec.Kind, name, codecType string) {
	r.logger.Debug("module loaded", "kind", kind, "name", name, "codec_type", codecType)
	obs.ModuleLoads.WithLabelValues(string(kind)).Inc()
	if r.bus != nil {
		r.bus.Publish(events.ModuleLoadedEvent{
			Kind:      string(kind),
			Name:      name,
			CodecType: codecType,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (r *Registry) moduleFailed(kind codec.Kind, name string, err error) {
	r.logger.Warn("cannot add module", "kind", kind, "name", name, "error", err)
	obs.ModuleLoadFailures.WithLabelValues(string(kind)).Inc()
	if r.bus != nil {
		r.bus.Publish(events.ModuleLoadFailedEvent{
			Kind:      string(kind),
			Name:      name,
			Error:     err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Cleanup tears down every loaded module and resets the registry to its
// uninitialized state. Idempotent; a teardown failure in one module does
// not stop the others.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return
	}
	mods := r.cleanupModules
	r.cleanupModules = nil
	for _, mod := range mods {
		if err := r.teardown(mod); err != nil {
			r.logger.Error("error cleaning up module", "codec_type", mod.CodecType(), "error", err)
		}
	}
	r.encoderSpecs = make(table[codec.Spec])
	r.cscSpecs = make(table[codec.Spec])
	r.decoderSpecs = make(table[DecoderEntry])
	r.videoEncoders = nil
	r.cscModules = nil
	r.videoDecoders = nil
	r.initialized = false
	r.updateTableMetrics()
	if r.bus != nil {
		r.bus.Publish(events.RegistryCleanedEvent{
			ModulesTornDown: len(mods),
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (r *Registry) teardown(mod codec.Module) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("teardown panicked: %v", rec)
		}
	}()
	return mod.Teardown()
}

// Clone returns a new, already-initialized registry whose tables are
// structurally independent copies sharing the same spec values. A derived
// session can prune its copy (drop encoders, for instance) without
// touching this one. The clone does not own the loaded modules; cleaning
// it up never tears them down.
func (r *Registry) Clone() *Registry {
	r.Init()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := &Registry{
		encoderSpecs: r.encoderSpecs.clone(),
		cscSpecs:     r.cscSpecs.clone(),
		decoderSpecs: r.decoderSpecs.clone(),
		catalog:      r.catalog,
		loader:       r.loader,
		logger:       r.logger,
		bus:          r.bus,
		initialized:  true,
	}
	return out
}

// AddEncoderSpec records that an encoder can produce encoding from the
// given input colorspace. Appends in discovery order; uniqueness per
// producing module is the caller's responsibility.
func (r *Registry) AddEncoderSpec(encoding codec.Encoding, colorspace codec.Colorspace, spec codec.Spec) {
	r.encoderSpecs.add(encoding, colorspace, spec)
}

// AddCSCSpec records a colorspace conversion capability.
func (r *Registry) AddCSCSpec(in, out codec.Colorspace, spec codec.Spec) {
	r.cscSpecs.add(in, out, spec)
}

// AddDecoder records that a decoder accepts encoding with the given input
// colorspace.
func (r *Registry) AddDecoder(encoding codec.Encoding, colorspace codec.Colorspace, entry DecoderEntry) {
	r.decoderSpecs.add(encoding, colorspace, entry)
}

// Encodings returns the encodings at least one encoder can produce.
// Unordered snapshot.
func (r *Registry) Encodings() []codec.Encoding {
	return r.encoderSpecs.outerKeys()
}

// Decodings returns the encodings at least one decoder accepts. Unordered
// snapshot.
func (r *Registry) Decodings() []codec.Encoding {
	return r.decoderSpecs.outerKeys()
}

// CSCInputs returns the colorspaces at least one converter can read.
// Unordered snapshot.
func (r *Registry) CSCInputs() []codec.Colorspace {
	return r.cscSpecs.outerKeys()
}

// EncoderSpecs returns the input colorspace to spec list mapping for an
// encoding. Empty map when the encoding is unknown; treat as read-only.
func (r *Registry) EncoderSpecs(encoding codec.Encoding) map[codec.Colorspace][]codec.Spec {
	return r.encoderSpecs.inner(encoding)
}

// CSCSpecs returns the output colorspace to spec list mapping for an input
// colorspace. Empty map when unknown; treat as read-only.
func (r *Registry) CSCSpecs(in codec.Colorspace) map[codec.Colorspace][]codec.Spec {
	return r.cscSpecs.inner(in)
}

// DecoderSpecs returns the input colorspace to decoder entry mapping for
// an encoding. Empty map when unknown; treat as read-only.
func (r *Registry) DecoderSpecs(encoding codec.Encoding) map[codec.Colorspace][]DecoderEntry {
	return r.decoderSpecs.inner(encoding)
}

func (r *Registry) updateTableMetrics() {
	obs.TableEntries.WithLabelValues("encoder").Set(float64(r.encoderSpecs.pairCount()))
	obs.TableEntries.WithLabelValues("csc").Set(float64(r.cscSpecs.pairCount()))
	obs.TableEntries.WithLabelValues("decoder").Set(float64(r.decoderSpecs.pairCount()))
}
