package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockscope/internal/engine"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfiles(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  tpch:
    host: db.internal
    port: "5433"
    user: analyst
    password: hunter2
    dbname: tpch
`)

	profiles, err := LoadProfiles(path)
	require.NoError(t, err)

	p, ok := profiles.Profiles["tpch"]
	require.True(t, ok)
	assert.Equal(t, "db.internal", p.Host)
	assert.Equal(t, "5433", p.Port)
	assert.Equal(t, "tpch", p.Database)
}

func TestLoadProfiles_MissingFile(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestResolveConfig_PlaceholdersWhenEmpty(t *testing.T) {
	cfg, err := ResolveConfig(&RootOptions{})
	require.NoError(t, err)

	assert.Equal(t, engine.Config{
		Host:     PlaceholderHost,
		Port:     PlaceholderPort,
		User:     PlaceholderUser,
		Password: PlaceholderPassword,
		Database: PlaceholderDatabase,
	}, cfg)
}

func TestResolveConfig_FlagsOverrideProfile(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  tpch:
    host: db.internal
    dbname: tpch
`)

	opts := &RootOptions{
		ConfigPath: path,
		Profile:    "tpch",
	}
	opts.Conn.Host = "localhost"

	cfg, err := ResolveConfig(opts)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host, "explicit flag wins over the profile")
	assert.Equal(t, "tpch", cfg.Database, "profile fills what flags leave empty")
	assert.Equal(t, PlaceholderPort, cfg.Port, "placeholder fills the rest")
}

func TestResolveConfig_UnknownProfile(t *testing.T) {
	path := writeProfiles(t, "profiles: {}\n")

	_, err := ResolveConfig(&RootOptions{ConfigPath: path, Profile: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "nope" not found`)
}
