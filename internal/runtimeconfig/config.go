package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrLoggingProviderUnknown indicates the logging provider is not supported.
var ErrLoggingProviderUnknown = errors.New("approval config: logging provider is invalid")

// ErrLoggingLevelInvalid indicates the configured logging level is not supported.
var ErrLoggingLevelInvalid = errors.New("approval config: logging level is invalid")

// ErrLoggingFormatInvalid indicates the configured logging format is not supported.
var ErrLoggingFormatInvalid = errors.New("approval config: logging format is invalid")

// ErrStorageProviderUnknown indicates the content storage provider is not supported.
var ErrStorageProviderUnknown = errors.New("approval config: storage provider is invalid")

// ErrQueueStoreUnknown indicates the offline queue store is not supported.
var ErrQueueStoreUnknown = errors.New("approval config: offline queue store is invalid")

// ErrQueueStorePathRequired indicates a durable queue store needs a filesystem path.
var ErrQueueStorePathRequired = errors.New("approval config: offline queue store path is required for badger storage")

// ErrDrainTimeoutInvalid indicates the per-action drain timeout is negative.
var ErrDrainTimeoutInvalid = errors.New("approval config: offline drain timeout must be zero or positive")

// Config drives construction of the approval module. Zero values are
// filled by DefaultConfig; hosts typically start from that and override.
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Storage  StorageConfig  `json:"storage"`
	Offline  OfflineConfig  `json:"offline"`
	Workflow WorkflowConfig `json:"workflow"`
}

// LoggingConfig selects and tunes the logging provider.
type LoggingConfig struct {
	// Provider is "gologger" or "noop".
	Provider  string   `json:"provider"`
	Level     string   `json:"level"`
	Format    string   `json:"format"`
	AddSource bool     `json:"add_source"`
	Focus     []string `json:"focus,omitempty"`
}

// StorageConfig selects the content backend.
type StorageConfig struct {
	// Provider is "memory" or "bun". The bun provider needs a database
	// handle supplied by the host at construction time.
	Provider string `json:"provider"`
}

// OfflineConfig tunes the queue and sync manager.
type OfflineConfig struct {
	// Store is "memory" or "badger".
	Store string `json:"store"`
	// Path locates the badger database directory. Ignored by the memory store.
	Path string `json:"path,omitempty"`
	// RetainFailed re-queues actions whose replay failed instead of
	// discarding them. Off by default to avoid retry storms.
	RetainFailed bool `json:"retain_failed"`
	// DrainTimeout bounds each replayed call during a drain. Zero
	// disables the per-action timeout.
	DrainTimeout time.Duration `json:"drain_timeout"`
}

// WorkflowConfig optionally replaces the fixed status transition graph.
type WorkflowConfig struct {
	Definition *WorkflowDefinitionConfig `json:"definition,omitempty"`
}

// WorkflowDefinitionConfig declares a custom transition table.
type WorkflowDefinitionConfig struct {
	States      []WorkflowStateConfig      `json:"states"`
	Transitions []WorkflowTransitionConfig `json:"transitions"`
}

// WorkflowStateConfig declares one lifecycle state.
type WorkflowStateConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Terminal    bool   `json:"terminal,omitempty"`
}

// WorkflowTransitionConfig declares one edge of the status graph.
type WorkflowTransitionConfig struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// DefaultConfig returns the configuration used when the host supplies nothing.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
			Format:   "json",
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Offline: OfflineConfig{
			Store:        "memory",
			DrainTimeout: 30 * time.Second,
		},
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
	case "", "noop", "gologger":
	default:
		return ErrLoggingProviderUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Storage.Provider)) {
	case "", "memory", "bun":
	default:
		return ErrStorageProviderUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Offline.Store)) {
	case "", "memory":
	case "badger":
		if strings.TrimSpace(c.Offline.Path) == "" {
			return ErrQueueStorePathRequired
		}
	default:
		return ErrQueueStoreUnknown
	}

	if c.Offline.DrainTimeout < 0 {
		return ErrDrainTimeoutInvalid
	}

	return nil
}
