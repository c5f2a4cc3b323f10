package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/WelcomerTeam/Discord/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestGetConfigDefaults(t *testing.T) {
	provider := config.NewConfigProviderFromPath(filepath.Join(t.TempDir(), "missing.yaml"), "", zerolog.Nop())

	configuration, err := provider.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.Default(), *configuration)
	assert.Equal(t, zerolog.InfoLevel, configuration.LogLevel())
}

func TestGetConfigFileAndEnvironment(t *testing.T) {
	path := writeFile(t, "discord.yaml", `
rest:
  token: Bot from-file
  application_id: 5000
  version: v9
state:
  backend: redis
  redis_address: 127.0.0.1:6379
logging:
  level: debug
`)

	envFile := writeFile(t, ".env", "DISCORD_TOKEN=Bot from-env-file\nDISCORD_REDIS_PREFIX=welcomer\n")

	t.Setenv("DISCORD_REDIS_DB", "3")
	// Set explicitly so the value loaded from .env is cleaned up after the test.
	t.Setenv("DISCORD_TOKEN", "Bot from-environment")
	t.Setenv("DISCORD_REDIS_PREFIX", "")
	require.NoError(t, os.Unsetenv("DISCORD_REDIS_PREFIX"))

	provider := config.NewConfigProviderFromPath(path, envFile, zerolog.Nop())

	configuration, err := provider.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bot from-environment", configuration.REST.Token, "the environment wins over .env")
	assert.Equal(t, "welcomer", configuration.State.RedisPrefix)
	assert.Equal(t, uint64(5000), configuration.REST.ApplicationID)
	assert.Equal(t, "v9", configuration.REST.Version)
	assert.Equal(t, "https://discord.com", configuration.REST.Endpoint, "unset keys keep their defaults")
	assert.Equal(t, 3, configuration.State.RedisDB)
	assert.Equal(t, zerolog.DebugLevel, configuration.LogLevel())
}

func TestGetConfigInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"backend":  "state:\n  backend: etcd\n",
		"redis":    "state:\n  backend: redis\n",
		"endpoint": "rest:\n  endpoint: \"\"\n",
		"level":    "logging:\n  level: loud\n",
	} {
		provider := config.NewConfigProviderFromPath(writeFile(t, name+".yaml", content), "", zerolog.Nop())

		_, err := provider.GetConfig(context.Background())
		assert.ErrorIs(t, err, config.ErrInvalidConfiguration, name)
	}

	provider := config.NewConfigProviderFromPath(writeFile(t, "broken.yaml", "rest: [\n"), "", zerolog.Nop())

	_, err := provider.GetConfig(context.Background())
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discord.yaml")
	provider := config.NewConfigProviderFromPath(path, "", zerolog.Nop())

	saved := config.Default()
	saved.REST.ProxyURL = "http://proxy:3000"
	saved.State.Backend = config.BackendNone

	require.NoError(t, provider.SaveConfig(context.Background(), &saved))

	loaded, err := provider.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, *loaded)
}
