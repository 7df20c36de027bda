package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/blockscope/internal/engine"
)

// Placeholder connection values, used for any field the caller leaves
// empty. They match the defaults of a stock local PostgreSQL install.
const (
	PlaceholderHost     = "0.0.0.0"
	PlaceholderPort     = "5432"
	PlaceholderUser     = "postgres"
	PlaceholderPassword = "postgres"
	PlaceholderDatabase = "postgres"
)

// Profiles is the schema of the connection profiles file: a named map of
// engine configs.
type Profiles struct {
	Profiles map[string]engine.Config `yaml:"profiles"`
}

// LoadProfiles reads a profiles file.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	var p Profiles
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profiles file %s: %w", path, err)
	}
	return &p, nil
}

// DefaultProfilesPath returns the conventional profiles location, or ""
// if the home directory is unknown.
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockscope.yaml")
}

// ResolveConfig layers the effective connection config: named profile
// (if any), explicit flags on top, placeholders for whatever is left.
func ResolveConfig(opts *RootOptions) (engine.Config, error) {
	var cfg engine.Config

	if opts.Profile != "" {
		path := opts.ConfigPath
		if path == "" {
			path = DefaultProfilesPath()
		}
		profiles, err := LoadProfiles(path)
		if err != nil {
			return engine.Config{}, err
		}
		p, ok := profiles.Profiles[opts.Profile]
		if !ok {
			return engine.Config{}, fmt.Errorf("profile %q not found in %s", opts.Profile, path)
		}
		cfg = p
	}

	overlay(&cfg.Host, opts.Conn.Host, PlaceholderHost)
	overlay(&cfg.Port, opts.Conn.Port, PlaceholderPort)
	overlay(&cfg.User, opts.Conn.User, PlaceholderUser)
	overlay(&cfg.Password, opts.Conn.Password, PlaceholderPassword)
	overlay(&cfg.Database, opts.Conn.Database, PlaceholderDatabase)
	return cfg, nil
}

// overlay applies the flag value if set, else keeps the profile value,
// else falls back to the placeholder.
func overlay(dst *string, flag, placeholder string) {
	if flag != "" {
		*dst = flag
		return
	}
	if *dst == "" {
		*dst = placeholder
	}
}
