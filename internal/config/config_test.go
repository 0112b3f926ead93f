package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN", "bot-token")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "")
	t.Setenv("OPS_ADDR", "")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("TRIGGER_KEY", "")
	t.Setenv("POLL_EXPIRY", "")
	t.Setenv("BROADCAST_CHANNELS", "")
}

func TestLoadRequiresToken(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN")
}

func TestLoadRequiresMongoURI(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bot-token", cfg.Token)
	assert.Equal(t, "enquetesDB", cfg.MongoDB)
	assert.Equal(t, ":8080", cfg.OpsAddr)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "z", cfg.TriggerKey)
	assert.Equal(t, 24*time.Hour, cfg.PollExpiry)
	assert.Equal(t, DefaultQuestion, cfg.Question)
	assert.Len(t, cfg.Options, 4)
	assert.Empty(t, cfg.BroadcastChannels)
}

func TestLoadBroadcastChannels(t *testing.T) {
	setRequired(t)
	t.Setenv("BROADCAST_CHANNELS", " 100, 200 ,,300 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "200", "300"}, cfg.BroadcastChannels)
}

func TestLoadInvalidExpiry(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_EXPIRY", "um dia")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLL_EXPIRY")
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGO_DB", "outroDB")
	t.Setenv("POLL_EXPIRY", "1h30m")
	t.Setenv("COMMAND_PREFIX", "?")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "outroDB", cfg.MongoDB)
	assert.Equal(t, 90*time.Minute, cfg.PollExpiry)
	assert.Equal(t, "?", cfg.CommandPrefix)
}
