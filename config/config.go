package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/s0up4200/arrsync/arr"
	"github.com/s0up4200/arrsync/filter"
)

// Load reads the configuration from the environment and, when configPath is
// set, from a config file. Environment variables take precedence over the file.
// The result is not validated; call Validate before using it.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// arr.api_key <-> ARR_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Arr defaults
	v.SetDefault("arr.software", "radarr")
	v.SetDefault("arr.url", "")
	v.SetDefault("arr.api_key", "")
	v.SetDefault("arr.timeout", "30s")

	// Import defaults
	v.SetDefault("import.path", "")
	v.SetDefault("import.filter_existing_files", true)

	// Cleanup defaults
	v.SetDefault("delete.rejected_items", false)
	v.SetDefault("delete.rejected_item_folders", true)
	v.SetDefault("delete.rejected_filter", "")
	v.SetDefault("download.folder_prefix", "")

	v.SetDefault("dry_run", false)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate checks that the configuration can drive a sync and resolves the arr variant.
func (c *Config) Validate() error {
	return validate(c)
}

// ValidateConnection checks only the settings needed to reach the arr server.
func (c *Config) ValidateConnection() error {
	return validateConnection(c)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := validateConnection(cfg); err != nil {
		return err
	}

	if err := requireSet("IMPORT_PATH", cfg.Import.Path); err != nil {
		return err
	}

	if cfg.Delete.RejectedFilter != "" {
		if _, err := filter.Compile(cfg.Delete.RejectedFilter); err != nil {
			return fmt.Errorf("invalid delete filter: %w", err)
		}
	}

	return nil
}

func validateConnection(cfg *Config) error {
	variant, err := arr.ParseVariant(cfg.Arr.Software)
	if err != nil {
		return err
	}
	cfg.Arr.Variant = variant

	// Mandatory settings are reported by their environment names
	if err := requireSet("ARR_URL", cfg.Arr.URL); err != nil {
		return err
	}
	if err := requireSet("ARR_API_KEY", cfg.Arr.APIKey); err != nil {
		return err
	}

	if _, err := ParseLogLevel(cfg.Log.Level); err != nil {
		return err
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid logging format: %s", cfg.Log.Format)
	}

	if cfg.Arr.Timeout < 0 {
		return fmt.Errorf("invalid arr timeout: %s", cfg.Arr.Timeout)
	}

	return nil
}

func requireSet(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s was empty or not supplied", name)
	}
	return nil
}

// ParseLogLevel maps a level name onto a zerolog level. Besides zerolog's own
// names it accepts "warning" and "critical".
func ParseLogLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "critical", "fatal":
		return zerolog.FatalLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid logging level: %s", name)
	}
}
