package approval

import "github.com/qitae/go-approval/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrQueueStoreUnknown      = runtimeconfig.ErrQueueStoreUnknown
	ErrQueueStorePathRequired = runtimeconfig.ErrQueueStorePathRequired
	ErrDrainTimeoutInvalid    = runtimeconfig.ErrDrainTimeoutInvalid
)

type (
	Config                   = runtimeconfig.Config
	LoggingConfig            = runtimeconfig.LoggingConfig
	StorageConfig            = runtimeconfig.StorageConfig
	OfflineConfig            = runtimeconfig.OfflineConfig
	WorkflowConfig           = runtimeconfig.WorkflowConfig
	WorkflowDefinitionConfig = runtimeconfig.WorkflowDefinitionConfig
	WorkflowStateConfig      = runtimeconfig.WorkflowStateConfig
	WorkflowTransitionConfig = runtimeconfig.WorkflowTransitionConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
