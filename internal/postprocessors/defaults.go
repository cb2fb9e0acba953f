package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/postprocessors/boilerplate"
	"github.com/custodia-labs/manuals/internal/postprocessors/normalise"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(boilerplate.Name, buildBoilerplate)
	r.Register(normalise.Name, buildNormalise)
}

// buildBoilerplate creates a boilerplate stripper from generic config.
// Supported config keys:
//   - patterns ([]string): extra regular expressions to remove
func buildBoilerplate(cfg map[string]any) (driven.RecordProcessor, error) {
	patterns := getStringsFromConfig(cfg, "patterns")
	p, err := boilerplate.New(patterns...)
	if err != nil {
		return nil, fmt.Errorf("boilerplate: %w", err)
	}
	return p, nil
}

// buildNormalise creates a whitespace normaliser from generic config.
// Supported config keys:
//   - tab_width (int): spaces per leading tab (default: 4)
func buildNormalise(cfg map[string]any) (driven.RecordProcessor, error) {
	var opts []normalise.Option
	if width := getIntFromConfig(cfg, "tab_width"); width > 0 {
		opts = append(opts, normalise.WithTabWidth(width))
	}
	return normalise.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// getStringsFromConfig extracts a string list, accepting the []any form
// produced by TOML decoding.
func getStringsFromConfig(cfg map[string]any, key string) []string {
	switch v := cfg[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
