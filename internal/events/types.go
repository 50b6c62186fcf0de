package events

// Event type constants for kelindar/event.
const (
	TypeModuleLoaded uint32 = iota + 1
	TypeModuleLoadFailed
	TypeRegistryInitialized
	TypeRegistryCleaned
	TypeModulesReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ModuleLoadedEvent is published when a codec module loads and its
// capabilities are registered.
type ModuleLoadedEvent struct {
	Kind      string `json:"kind" example:"encoder" doc:"Module category: encoder, csc or decoder"`
	Name      string `json:"name" example:"x264" doc:"Module name"`
	CodecType string `json:"codec_type" example:"x264" doc:"Type name the loaded module reports"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Load timestamp"`
}

// Type returns the event type identifier for ModuleLoadedEvent.
func (e ModuleLoadedEvent) Type() uint32 { return TypeModuleLoaded }

// ModuleLoadFailedEvent is published when a codec module fails to load or
// raises during introspection. The module contributes nothing to the
// registry but discovery continues.
type ModuleLoadFailedEvent struct {
	Kind      string `json:"kind" example:"decoder" doc:"Module category: encoder, csc or decoder"`
	Name      string `json:"name" example:"avcodec" doc:"Module name"`
	Error     string `json:"error" doc:"Load or introspection error"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Failure timestamp"`
}

// Type returns the event type identifier for ModuleLoadFailedEvent.
func (e ModuleLoadFailedEvent) Type() uint32 { return TypeModuleLoadFailed }

// RegistryInitializedEvent is published once a registry finishes its
// population pass.
type RegistryInitializedEvent struct {
	Encodings int    `json:"encodings" example:"3" doc:"Number of encodings offered"`
	Decodings int    `json:"decodings" example:"2" doc:"Number of decodable encodings"`
	CSCInputs int    `json:"csc_inputs" example:"5" doc:"Number of convertible input colorspaces"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for RegistryInitializedEvent.
func (e RegistryInitializedEvent) Type() uint32 { return TypeRegistryInitialized }

// RegistryCleanedEvent is published after a registry tears down its loaded
// modules and clears its tables.
type RegistryCleanedEvent struct {
	ModulesTornDown int    `json:"modules_torn_down" example:"4" doc:"Number of module handles torn down"`
	Timestamp       string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for RegistryCleanedEvent.
func (e RegistryCleanedEvent) Type() uint32 { return TypeRegistryCleaned }

// ModulesReloadedEvent is published when a configuration change triggers a
// module re-selection cycle.
type ModulesReloadedEvent struct {
	Encoders  []string `json:"encoders" doc:"Enabled encoder selection"`
	CSC       []string `json:"csc" doc:"Enabled csc selection"`
	Decoders  []string `json:"decoders" doc:"Enabled decoder selection"`
	Timestamp string   `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ModulesReloadedEvent.
func (e ModulesReloadedEvent) Type() uint32 { return TypeModulesReloaded }
