package mdshelf

import "github.com/goliatone/go-mdshelf/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown  = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired    = runtimeconfig.ErrStorageDSNRequired
	ErrLibraryExtension      = runtimeconfig.ErrLibraryExtension
	ErrLibraryMaxDepth       = runtimeconfig.ErrLibraryMaxDepth
	ErrHTTPAddrRequired      = runtimeconfig.ErrHTTPAddrRequired
	ErrHTTPTimeoutInvalid    = runtimeconfig.ErrHTTPTimeoutInvalid
	ErrLoggingLevelInvalid   = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid  = runtimeconfig.ErrLoggingFormatInvalid
	ErrMetricsPathInvalid    = runtimeconfig.ErrMetricsPathInvalid
	ErrHighlightStyleMissing = runtimeconfig.ErrHighlightStyleMissing
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	LibraryConfig  = runtimeconfig.LibraryConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	MetricsConfig  = runtimeconfig.MetricsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
