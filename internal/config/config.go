package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// The question and options are fixed for the deployment; every poll this bot
// creates uses them.
var (
	DefaultQuestion = "Com que frequência você faz networking com outros profissionais da sua área?"
	DefaultOptions  = []string{
		"Frequentemente, estou sempre ativo em eventos e plataformas",
		"Ocasionalmente, participo de algumas oportunidades",
		"Raramente, não invisto muito tempo nisso",
		"Nunca, ainda não comecei a me engajar com networking",
	}
)

const (
	defaultMongoDB    = "enquetesDB"
	defaultOpsAddr    = ":8080"
	defaultPrefix     = "!"
	defaultExpiry     = 24 * time.Hour
	defaultTriggerKey = "z"
)

type Config struct {
	Token    string
	MongoURI string
	MongoDB  string

	OpsAddr       string
	CommandPrefix string
	TriggerKey    string

	Question   string
	Options    []string
	PollExpiry time.Duration

	// BroadcastChannels is the deployment-specific list of channel ids the
	// broadcast command targets.
	BroadcastChannels []string
}

// Load reads configuration from the environment, after loading an optional
// .env file. TOKEN and MONGO_URI are required; everything else has defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TOKEN")
	if token == "" {
		return nil, errors.New("TOKEN is not set")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}

	cfg := &Config{
		Token:             token,
		MongoURI:          mongoURI,
		MongoDB:           defaultMongoDB,
		OpsAddr:           defaultOpsAddr,
		CommandPrefix:     defaultPrefix,
		TriggerKey:        defaultTriggerKey,
		Question:          DefaultQuestion,
		Options:           DefaultOptions,
		PollExpiry:        defaultExpiry,
		BroadcastChannels: splitChannels(os.Getenv("BROADCAST_CHANNELS")),
	}

	if v := os.Getenv("MONGO_DB"); v != "" {
		cfg.MongoDB = v
	}
	if v := os.Getenv("OPS_ADDR"); v != "" {
		cfg.OpsAddr = v
	}
	if v := os.Getenv("COMMAND_PREFIX"); v != "" {
		cfg.CommandPrefix = v
	}
	if v := os.Getenv("TRIGGER_KEY"); v != "" {
		cfg.TriggerKey = v
	}
	if v := os.Getenv("POLL_EXPIRY"); v != "" {
		expiry, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_EXPIRY: %w", err)
		}
		cfg.PollExpiry = expiry
	}

	return cfg, nil
}

func splitChannels(raw string) []string {
	var channels []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			channels = append(channels, id)
		}
	}
	return channels
}
