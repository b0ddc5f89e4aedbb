// FILE: lixenwraith/sdklog/override.go
package sdklog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the configuration.
// Each override should be in the format "key=value". All overrides are
// attempted and their errors reported together.
//
// Example:
//
//	cfg := sdklog.DefaultConfig()
//	err := cfg.ApplyOverride(
//	    "directory=/var/lib/app/logs",
//	    "file_level=debug",
//	    "console_level=off",
//	)
func (c *Config) ApplyOverride(overrides ...string) error {
	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	return combineConfigErrors(errors)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("sdklog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "sdklog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Sink levels
	case "console_level":
		lv, err := ParseLevel(value)
		if err != nil {
			return fmtErrorf("invalid console_level value '%s': %w", value, err)
		}
		cfg.ConsoleLevel = lv
	case "file_level":
		lv, err := ParseLevel(value)
		if err != nil {
			return fmtErrorf("invalid file_level value '%s': %w", value, err)
		}
		cfg.FileLevel = lv

	// File ring
	case "directory":
		cfg.Directory = value
	case "file_prefix":
		cfg.FilePrefix = value
	case "file_count":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for file_count '%s': %w", value, err)
		}
		cfg.FileCount = intVal
	case "file_size_limit_kb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for file_size_limit_kb '%s': %w", value, err)
		}
		cfg.FileSizeLimitKB = intVal
	case "buffer_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for buffer_size '%s': %w", value, err)
		}
		cfg.BufferSize = intVal

	// Console
	case "console_target":
		cfg.ConsoleTarget = value

	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown config key: %s", key)
	}

	return nil
}
