package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN        string // empty means the embedded in-memory database
	ServerPort   string
	DefaultActor string // audit actor when the client sends no X-Actor header
	SyncAMQPURL  string // empty means sync notifications are only logged
	FollowUpCron string // cron spec for the follow-up digest, empty disables it
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:        os.Getenv("DB_DSN"),
		ServerPort:   os.Getenv("SERVER_PORT"),
		DefaultActor: os.Getenv("DEFAULT_ACTOR"),
		SyncAMQPURL:  os.Getenv("SYNC_AMQP_URL"),
		FollowUpCron: os.Getenv("FOLLOWUP_CRON"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DefaultActor == "" {
		cfg.DefaultActor = "hr@local"
	}

	return cfg
}
