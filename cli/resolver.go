package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written as YAML documents.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - The named top-level section becomes a flat configuration map;
//     all other top-level sections are ignored
//   - Nested mappings are flattened by joining keys with hyphens
//     (e.g., "log: {level: debug}" applies to --log-level)
//   - Flag names with hyphens (e.g., "log-level") may use underscores
//     in the config file (e.g., "log_level")
//   - Environment references ($VAR or ${VAR}) are expanded before
//     parsing; unset variables are left in place
//   - Sequences are converted to arrays for repeatable flags
//
// Example config file:
//
//	config:
//	  log-level: debug
//	  log-format: json
//	  log-pretty: true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			// Unreadable config - return empty config
			return config{}, nil
		}

		var root map[string]any

		err = yaml.Unmarshal([]byte(expandEnv(string(data))), &root)
		if err != nil {
			// Parse error - return empty config
			return config{}, nil
		}

		section, ok := root[name].(map[string]any)
		if !ok {
			// Section not found or not a mapping - return empty config
			return config{}, nil
		}

		flat := make(config)
		flatten("", section, flat)

		return flat, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten converts nested mappings into a flat map whose keys join the
// nesting path with hyphens.
func flatten(prefix string, src map[string]any, dst config) {
	for key, val := range src {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
		}

		if sub, ok := val.(map[string]any); ok {
			flatten(name, sub, dst)

			continue
		}

		dst[name] = nativeValue(val)
	}
}

// nativeValue converts a decoded YAML value to a representation Kong
// can apply to a flag.
func nativeValue(val any) any {
	switch num := val.(type) {
	case int:
		// Kong requires numbers as strings for parsing
		return strconv.Itoa(num)
	case int64:
		return strconv.FormatInt(num, 10)
	case uint64:
		return strconv.FormatUint(num, 10)
	case float64:
		return strconv.FormatFloat(num, 'f', -1, 64)
	case []any:
		items := make([]any, len(num))
		for i, item := range num {
			items[i] = nativeValue(item)
		}

		return items
	default:
		return val
	}
}

// expandEnv substitutes $VAR and ${VAR} references from the process
// environment. Unset variables are left in place so that literal
// dollar text survives a round trip.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}

		return "${" + key + "}"
	})
}
