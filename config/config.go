// Package config loads the environment-sourced configuration a mind boots
// from. Loading happens once at startup; a missing required endpoint is a
// fatal configuration error reported before any loop starts.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mindforge/collective-mind/core"
)

// Config is the full init contract for one mind process.
type Config struct {
	MindName       string
	Specialization string

	BusURL          string
	StoreDir        string
	ProjectRoot     string
	InferenceAPIKey string
	InferenceModel  string

	APIPort       int
	BaseDelay     time.Duration
	StandupPeriod time.Duration

	Mission core.Mission
}

// Load reads the environment (and an optional .env file) into a Config. It
// returns an error for a missing required endpoint rather than running
// partially configured.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		MindName:        envOr("MIND_NAME", "COLLECTIVE_MIND"),
		Specialization:  envOr("SPECIALIZATION", core.SpecGeneralist),
		BusURL:          os.Getenv("NATS_URL"),
		StoreDir:        envOr("STORE_DIR", "./data"),
		ProjectRoot:     envOr("PROJECT_ROOT", "/collective-project"),
		InferenceAPIKey: os.Getenv("OPENAI_API_KEY"),
		InferenceModel:  os.Getenv("INFERENCE_MODEL"),
		APIPort:         envIntOr("API_PORT", 8080),
		BaseDelay:       time.Duration(envIntOr("BASE_DELAY_SECONDS", 30)) * time.Second,
		StandupPeriod:   time.Duration(envIntOr("STANDUP_PERIOD_SECONDS", 3600)) * time.Second,
		Mission:         missionFromEnv(),
	}

	if cfg.BusURL == "" {
		return nil, fmt.Errorf("NATS_URL is required")
	}
	if cfg.InferenceAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, minds will run without inference")
	}

	return cfg, nil
}

func missionFromEnv() core.Mission {
	mission := core.DefaultMission()
	if goal := os.Getenv("MISSION_GOAL"); goal != "" {
		mission.Goal = goal
	}
	if criteria := os.Getenv("MISSION_SUCCESS_CRITERIA"); criteria != "" {
		mission.SuccessCriteria = criteria
	}
	if days := envIntOr("MISSION_TIMELINE_DAYS", 0); days > 0 {
		mission.TimelineDays = days
	}
	return mission
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
