package cardsite

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[log]
level = "debug"
format = "json"

[db]
host = "db.internal"
user = "cards"
database = "cards"

[web]
port = 9000
production = true

[session]
secret = "file-secret"
ttl = "48h"
current_version = 3
min_version = 2

[twitch]
client_id = "client"
streamer_user_id = "1000"
admin_user_ids = ["2000", "3000"]

[s3]
bucket = "cards"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port, "defaults survive a partial file")
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.True(t, cfg.Web.Production)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL.Std())
	assert.Equal(t, 3, cfg.Session.CurrentVersion)
	assert.Equal(t, []string{"2000", "3000"}, cfg.Twitch.AdminUserIDs)
	assert.Equal(t, "indigestion:broadcast", cfg.Realtime.Channel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("CARDSITE_SESSION_SECRET", "env-secret")
	t.Setenv("TWITCH_CLIENT_SECRET", "twitch-secret")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Session.Secret)
	assert.Equal(t, "twitch-secret", cfg.Twitch.ClientSecret)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to open config")

	_, err = LoadConfig(writeConfig(t, "[session]\nttl = \"forever\"\n"))
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.MinVersion = 5

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"session.secret is required",
		"session.min_version (5) is above session.current_version (1)",
		"db.user is required",
		"twitch.client_id is required",
		"s3.bucket is required",
	} {
		assert.ErrorContains(t, err, want)
	}
}
