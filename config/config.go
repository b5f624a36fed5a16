package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonwraymond/clawstrap/observe"
	"github.com/jonwraymond/clawstrap/secret"
)

// EnvPrefix is the prefix for all configuration environment variables,
// e.g. CLAWSTRAP_DEBUG, CLAWSTRAP_CONFIG_DIR, CLAWSTRAP_MANIFEST.
const EnvPrefix = "CLAWSTRAP"

// Config holds the resolved bootstrapper configuration.
type Config struct {
	// ConfigDir is the base directory for the default credential targets.
	ConfigDir string

	// Debug enables extended diagnostics and span tracing.
	Debug bool

	// Manifest is the optional YAML secret manifest path ("" = built-ins).
	Manifest string

	// Entries is the ordered secret table processed at startup.
	Entries []secret.Entry
}

// NewViper creates a viper instance with defaults and environment binding.
// Flags are bound on top by the CLI.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("config_dir", defaultConfigDir())
	v.SetDefault("debug", false)
	v.SetDefault("manifest", "")
	v.SetDefault("config", "")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load resolves the final configuration.
//
// A config file that was explicitly requested but cannot be read is an error.
// A broken or unreadable manifest is not: the bootstrapper's contract is
// best-effort startup, so Load warns and falls back to the built-in secret
// table rather than keeping the wrapped application from launching.
func Load(ctx context.Context, v *viper.Viper, log observe.Logger) (*Config, error) {
	if log == nil {
		log = observe.NewNoopLogger()
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	debug, err := ParseBool(v.GetString("debug"))
	if err != nil {
		log.Warn(ctx, "unrecognized debug value, diagnostics stay off",
			observe.Field{Key: "debug", Value: v.GetString("debug")},
			observe.Field{Key: "error", Value: err.Error()},
		)
	}

	cfg := &Config{
		Debug:    debug,
		Manifest: v.GetString("manifest"),
	}

	dir, err := secret.ExpandPath(v.GetString("config_dir"))
	if err != nil {
		return nil, fmt.Errorf("resolve config_dir: %w", err)
	}
	cfg.ConfigDir = dir

	if cfg.Manifest != "" {
		entries, err := LoadManifest(cfg.Manifest)
		if err != nil {
			log.Warn(ctx, "could not load secret manifest, using built-in secret table",
				observe.Field{Key: "manifest", Value: cfg.Manifest},
				observe.Field{Key: "error", Value: err.Error()},
			)
		} else {
			cfg.Entries = entries
			return cfg, nil
		}
	}

	cfg.Entries = DefaultEntries(cfg.ConfigDir)
	return cfg, nil
}

// ParseBool interprets the boolean spellings container environments actually
// write: 1/t/true/y/yes/on enable, 0/f/false/n/no/off (and empty) disable,
// case-insensitively. strconv.ParseBool would reject "yes" and "on", which
// would silently turn CLAWSTRAP_DEBUG=on into no diagnostics at all. Unknown
// spellings report an error so a typo is at least visible.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "", "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("config: unrecognized boolean value %q", s)
}

// DefaultEntries returns the built-in secret table rooted at configDir.
//
// The two files are the OAuth client configuration and token cache the
// wrapped MCP calendar server and gog CLI read at their own startup; their
// schema is opaque here.
func DefaultEntries(configDir string) []secret.Entry {
	return []secret.Entry{
		{
			ID:     "oauth-client",
			EnvVar: "GOG_CLIENT_SECRET_B64",
			Target: filepath.Join(configDir, "client_secret.json"),
		},
		{
			ID:     "oauth-token",
			EnvVar: "GOG_TOKEN_B64",
			Target: filepath.Join(configDir, "token.json"),
		},
	}
}

// defaultConfigDir is the user-config-style variant; mounted-volume variants
// override it via CLAWSTRAP_CONFIG_DIR or the config file.
func defaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "/data/gog"
	}
	return filepath.Join(base, "gog")
}
