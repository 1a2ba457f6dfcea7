package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/danspam/bundlemap/pkg/config"
)

// envVarPrefix is the prefix for all bundlemap environment variables.
const envVarPrefix = "BUNDLEMAP_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"OUTPUT_DIR":  {field: "output_dir", typ: envTypeString},
	"BASE_URL":    {field: "base_url", typ: envTypeString},
	"SOURCE_ROOT": {field: "source_root", typ: envTypeString},
	"ENGINE":      {field: "engine", typ: envTypeString},
	"DEBUG":       {field: "debug", typ: envTypeBool},
	"JOBS":        {field: "jobs", typ: envTypeInt},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with BUNDLEMAP_ (e.g., BUNDLEMAP_ENGINE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "output_dir":
		cfg.OutputDir = value
	case "base_url":
		cfg.BaseURL = value
	case "source_root":
		cfg.SourceRoot = value
	case "engine":
		cfg.Engine = config.Engine(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "debug":
		cfg.Debug = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"BUNDLEMAP_OUTPUT_DIR":  "Directory receiving built artifacts",
		"BUNDLEMAP_BASE_URL":    "URL prefix for sourceMappingURL references",
		"BUNDLEMAP_SOURCE_ROOT": "sourceRoot value written into emitted maps",
		"BUNDLEMAP_ENGINE":      "Minifier engine: native or esbuild",
		"BUNDLEMAP_DEBUG":       "Debug passthrough mode: true or false",
		"BUNDLEMAP_JOBS":        "Number of parallel workers (0 = auto)",
	}
}
