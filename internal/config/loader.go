package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// EnvPrefix prefixes every configuration environment variable.
	EnvPrefix = "STARCAT_"
	// EnvConfigFile names the YAML configuration file.
	EnvConfigFile = EnvPrefix + "CONFIG"
	// FlagMagnitudeLimit is the only command-line setting.
	FlagMagnitudeLimit = "magnitude-limit"
)

// BindFlags registers the command-line flags Load understands.
func BindFlags(fs *pflag.FlagSet) {
	fs.Float64(FlagMagnitudeLimit, 0, "only admit stars with a magnitude at or below this limit in some band")
}

// Load builds a Config by layering defaults, optional file, env vars and flags.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STARCAT_CONFIG is set
//  3. env (prefix STARCAT_)
//  4. flags that were set on the command line; flags may be nil
func Load(_ context.Context, flags *pflag.FlagSet) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// STARCAT_QUEUE_SIZE -> queue_size; STARCAT_CATALOGUES is comma separated.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if key == "catalogues" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	if flags != nil {
		flagProvider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), f.Value.String()
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return nil, fmt.Errorf("%w: flags: %w", ErrLoadConfig, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
