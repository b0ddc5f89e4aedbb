// FILE: lixenwraith/sdklog/config.go
package sdklog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Sink levels, LevelOff disables the sink entirely
	ConsoleLevel Level `toml:"console_level"`
	FileLevel    Level `toml:"file_level"`

	// File ring
	Directory       string `toml:"directory"`
	FilePrefix      string `toml:"file_prefix"`        // Files are named <prefix><slot>.log
	FileCount       int64  `toml:"file_count"`         // Ring depth
	FileSizeLimitKB int64  `toml:"file_size_limit_kb"` // Per-file ceiling, clamped to MinFileSizeLimitKB
	BufferSize      int64  `toml:"buffer_size"`        // File worker queue capacity

	// Console output settings
	ConsoleTarget string `toml:"console_target"` // "split", "stdout" or "stderr"

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	ConsoleLevel: LevelInfo,
	FileLevel:    LevelInfo,

	Directory:       "./logs",
	FilePrefix:      "sdklog_",
	FileCount:       2,
	FileSizeLimitKB: 1024,
	BufferSize:      1024,

	ConsoleTarget: ConsoleTargetSplit,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [sdklog] table of a TOML
// file and returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("sdklog.", *cfg); err != nil {
		return nil, fmt.Errorf("sdklog: failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("sdklog: failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "sdklog.", cfg); err != nil {
		return nil, fmt.Errorf("sdklog: failed to extract config values: %w", err)
	}

	cfg.clamp()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
// keyed by toml tag.
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("sdklog: failed to apply overrides: %w", err)
	}

	cfg.clamp()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		tomlTag := t.Field(i).Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

var levelType = reflect.TypeOf(Level(0))

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	// Levels accept names as well as ranks
	if field.Type() == levelType {
		switch v := value.(type) {
		case Level:
			field.SetInt(int64(v))
		case string:
			lv, err := ParseLevel(v)
			if err != nil {
				return err
			}
			field.SetInt(int64(lv))
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected level name or rank, got %T", value)
		}
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// clamp raises out-of-range ring settings to their floor instead of rejecting them
func (c *Config) clamp() {
	if c.FileSizeLimitKB < MinFileSizeLimitKB {
		c.FileSizeLimitKB = MinFileSizeLimitKB
	}
	if c.FileCount < 1 {
		c.FileCount = 1
	}
}

// Validate performs validation on the configuration. Size limit and file
// count are not validated; they are clamped when the logger is created.
func (c *Config) Validate() error {
	if !c.ConsoleLevel.Valid() {
		return fmtErrorf("invalid console_level: %d", c.ConsoleLevel)
	}
	if !c.FileLevel.Valid() {
		return fmtErrorf("invalid file_level: %d", c.FileLevel)
	}

	if c.ConsoleTarget != ConsoleTargetSplit && c.ConsoleTarget != ConsoleTargetStdout && c.ConsoleTarget != ConsoleTargetStderr {
		return fmtErrorf("invalid console_target: '%s' (use split, stdout or stderr)", c.ConsoleTarget)
	}

	// File settings only matter when the file sink is enabled
	if c.FileLevel != LevelOff {
		if strings.TrimSpace(c.Directory) == "" {
			return fmtErrorf("directory cannot be empty when file logging is enabled")
		}
		if strings.TrimSpace(c.FilePrefix) == "" {
			return fmtErrorf("file_prefix cannot be empty")
		}
		if strings.ContainsAny(c.FilePrefix, `/\`) {
			return fmtErrorf("file_prefix cannot contain path separators: %s", c.FilePrefix)
		}
		if c.BufferSize <= 0 {
			return fmtErrorf("buffer_size must be positive: %d", c.BufferSize)
		}
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
