// Package config loads qcache.Settings from a YAML or JSON file, with
// environment-variable overrides, in the same file+env layering style as
// this codebase's other components' configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arkilian/qcache"
)

// fileConfig is the on-disk shape, field names matching the settings names
// spec'd for this cache (query_cache_entry_put_timeout etc.), plus the
// store-wide max_bytes this implementation needs.
type fileConfig struct {
	MaxBytes                   int64  `yaml:"max_bytes" json:"max_bytes"`
	QueryCacheEntryPutTimeout  string `yaml:"query_cache_entry_put_timeout" json:"query_cache_entry_put_timeout"`
	MaxQueryCacheEntrySize     int64  `yaml:"max_query_cache_entry_size" json:"max_query_cache_entry_size"`
	MinExecutionsBeforeCaching int64  `yaml:"min_executions_before_caching" json:"min_executions_before_caching"`
}

// Load reads settings from path (YAML or JSON, chosen by extension),
// applies environment-variable overrides, and validates the result. An
// empty path skips the file step and returns defaults plus any env
// overrides.
func Load(path string) (qcache.Settings, error) {
	settings := qcache.DefaultSettings()

	if path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return qcache.Settings{}, err
		}
		applyFile(&settings, fc)
	}

	if err := applyEnv(&settings); err != nil {
		return qcache.Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return qcache.Settings{}, err
	}
	return settings, nil
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("qcache/config: reading %s: %w", path, err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		// yaml.Unmarshal also parses JSON, since JSON is a subset of YAML.
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, fmt.Errorf("qcache/config: parsing %s: %w", path, err)
		}
	default:
		return fileConfig{}, fmt.Errorf("qcache/config: unsupported config extension %q", ext)
	}
	return fc, nil
}

func applyFile(settings *qcache.Settings, fc fileConfig) {
	if fc.MaxBytes != 0 {
		settings.MaxBytes = fc.MaxBytes
	}
	if fc.QueryCacheEntryPutTimeout != "" {
		if d, err := time.ParseDuration(fc.QueryCacheEntryPutTimeout); err == nil {
			settings.EntryPutTimeout = d
		}
	}
	if fc.MaxQueryCacheEntrySize != 0 {
		settings.MaxEntrySize = fc.MaxQueryCacheEntrySize
	}
	if fc.MinExecutionsBeforeCaching != 0 {
		settings.MinExecutionsBeforeCaching = fc.MinExecutionsBeforeCaching
	}
}

// envPrefix namespaces every override this package recognizes.
const envPrefix = "QCACHE_"

func applyEnv(settings *qcache.Settings) error {
	if v := os.Getenv(envPrefix + "MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("qcache/config: %sMAX_BYTES: %w", envPrefix, err)
		}
		settings.MaxBytes = n
	}
	if v := os.Getenv(envPrefix + "ENTRY_PUT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("qcache/config: %sENTRY_PUT_TIMEOUT: %w", envPrefix, err)
		}
		settings.EntryPutTimeout = d
	}
	if v := os.Getenv(envPrefix + "MAX_ENTRY_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("qcache/config: %sMAX_ENTRY_SIZE: %w", envPrefix, err)
		}
		settings.MaxEntrySize = n
	}
	if v := os.Getenv(envPrefix + "MIN_EXECUTIONS_BEFORE_CACHING"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("qcache/config: %sMIN_EXECUTIONS_BEFORE_CACHING: %w", envPrefix, err)
		}
		settings.MinExecutionsBeforeCaching = n
	}
	return nil
}
