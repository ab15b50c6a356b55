package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/qitae/go-approval/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Storage.Provider != "memory" {
		t.Fatalf("expected memory storage default, got %q", cfg.Storage.Provider)
	}
	if cfg.Offline.Store != "memory" {
		t.Fatalf("expected memory queue store default, got %q", cfg.Offline.Store)
	}
	if cfg.Offline.RetainFailed {
		t.Fatal("failed replays should be discarded by default")
	}
	if cfg.Offline.DrainTimeout != 30*time.Second {
		t.Fatalf("expected 30s drain timeout, got %s", cfg.Offline.DrainTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*runtimeconfig.Config)
		wantErr error
	}{
		{
			"unknown logging provider",
			func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "syslog" },
			runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			"invalid logging level",
			func(cfg *runtimeconfig.Config) { cfg.Logging.Level = "verbose" },
			runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			"invalid logging format",
			func(cfg *runtimeconfig.Config) { cfg.Logging.Format = "xml" },
			runtimeconfig.ErrLoggingFormatInvalid,
		},
		{
			"unknown storage provider",
			func(cfg *runtimeconfig.Config) { cfg.Storage.Provider = "postgres" },
			runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			"unknown queue store",
			func(cfg *runtimeconfig.Config) { cfg.Offline.Store = "redis" },
			runtimeconfig.ErrQueueStoreUnknown,
		},
		{
			"badger needs a path",
			func(cfg *runtimeconfig.Config) { cfg.Offline.Store = "badger" },
			runtimeconfig.ErrQueueStorePathRequired,
		},
		{
			"negative drain timeout",
			func(cfg *runtimeconfig.Config) { cfg.Offline.DrainTimeout = -time.Second },
			runtimeconfig.ErrDrainTimeoutInvalid,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateAcceptsKnownVariants(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "GoLogger"
	cfg.Logging.Level = "WARN"
	cfg.Logging.Format = "console"
	cfg.Storage.Provider = "bun"
	cfg.Offline.Store = "badger"
	cfg.Offline.Path = "/tmp/approval-queue"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected mixed-case known values to validate, got %v", err)
	}
}
