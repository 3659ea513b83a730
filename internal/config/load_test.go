package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"bot": {"token": "tok", "owner_id": "123"},
		"content_guard": {"enabled": true, "safe_roles": ["r1"], "safe_ids": ["u1"]},
		"logging": {"level": "debug", "path": "x.log"},
		"database": {"path": "x.db"}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.Bot.Token)
	assert.Equal(t, "123", cfg.Bot.OwnerID)
	assert.True(t, cfg.ContentGuard.Enabled)
	assert.Equal(t, []string{"r1"}, cfg.ContentGuard.SafeRoles)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bot": {"token": "file-token"}}`), 0644))

	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("OWNER_ID", "env-owner")
	t.Setenv("DATABASE_PATH", "env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, "env-owner", cfg.Bot.OwnerID)
	assert.Equal(t, "env.db", cfg.Database.Path)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("OWNER_ID", "")
	t.Setenv("DATABASE_PATH", "")

	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, "guardian.db", cfg.Database.Path)
	assert.Equal(t, "guardian.log", cfg.Logging.Path)
	assert.True(t, cfg.ContentGuard.Enabled)
}

func TestValidateRejectsMissingCredentials(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing token must be fatal")

	cfg.Bot.Token = "tok"
	assert.Error(t, cfg.Validate(), "missing owner must be fatal")

	cfg.Bot.OwnerID = "123"
	assert.NoError(t, cfg.Validate())
}
