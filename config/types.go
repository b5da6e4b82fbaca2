package config

import (
	"time"

	"github.com/s0up4200/arrsync/arr"
)

// Config represents the complete configuration structure
type Config struct {
	Arr      ArrConfig      `mapstructure:"arr"`
	Import   ImportConfig   `mapstructure:"import"`
	Delete   DeleteConfig   `mapstructure:"delete"`
	Download DownloadConfig `mapstructure:"download"`
	Log      LoggingConfig  `mapstructure:"log"`
	DryRun   bool           `mapstructure:"dry_run"`
}

// ArrConfig holds the arr server connection details
type ArrConfig struct {
	Software string        `mapstructure:"software"`
	URL      string        `mapstructure:"url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// Variant is parsed from Software during validation.
	Variant arr.Variant `mapstructure:"-"`
}

// ImportConfig controls the manual import scan
type ImportConfig struct {
	Path                string `mapstructure:"path"`
	FilterExistingFiles bool   `mapstructure:"filter_existing_files"`
}

// DeleteConfig controls cleanup of rejected items
type DeleteConfig struct {
	RejectedItems       bool   `mapstructure:"rejected_items"`
	RejectedItemFolders bool   `mapstructure:"rejected_item_folders"`
	RejectedFilter      string `mapstructure:"rejected_filter"`
}

// DownloadConfig maps server paths onto the local filesystem
type DownloadConfig struct {
	FolderPrefix string `mapstructure:"folder_prefix"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
