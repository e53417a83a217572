package config

import (
	"testing"
	"time"

	"github.com/mindforge/collective-mind/core"
)

func TestLoad(t *testing.T) {
	t.Run("Missing bus endpoint is fatal", func(t *testing.T) {
		t.Setenv("NATS_URL", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected an error without NATS_URL")
		}
	})

	t.Run("Defaults fill the rest", func(t *testing.T) {
		t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
		t.Setenv("MIND_NAME", "")
		t.Setenv("SPECIALIZATION", "")
		t.Setenv("BASE_DELAY_SECONDS", "")
		t.Setenv("STANDUP_PERIOD_SECONDS", "")
		t.Setenv("API_PORT", "")
		t.Setenv("MISSION_GOAL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.MindName != "COLLECTIVE_MIND" {
			t.Errorf("unexpected default name: %s", cfg.MindName)
		}
		if cfg.Specialization != core.SpecGeneralist {
			t.Errorf("unexpected default specialization: %s", cfg.Specialization)
		}
		if cfg.BaseDelay != 30*time.Second {
			t.Errorf("unexpected default base delay: %v", cfg.BaseDelay)
		}
		if cfg.StandupPeriod != time.Hour {
			t.Errorf("unexpected default standup period: %v", cfg.StandupPeriod)
		}
		if cfg.APIPort != 8080 {
			t.Errorf("unexpected default API port: %d", cfg.APIPort)
		}
		if cfg.Mission.Goal != core.DefaultMission().Goal {
			t.Errorf("unexpected default mission goal: %s", cfg.Mission.Goal)
		}
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
		t.Setenv("MIND_NAME", "Atlas")
		t.Setenv("SPECIALIZATION", core.SpecArchitect)
		t.Setenv("BASE_DELAY_SECONDS", "5")
		t.Setenv("MISSION_GOAL", "Ship the prototype")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.MindName != "Atlas" || cfg.Specialization != core.SpecArchitect {
			t.Errorf("overrides not applied: %s/%s", cfg.MindName, cfg.Specialization)
		}
		if cfg.BaseDelay != 5*time.Second {
			t.Errorf("base delay override not applied: %v", cfg.BaseDelay)
		}
		if cfg.Mission.Goal != "Ship the prototype" {
			t.Errorf("mission override not applied: %s", cfg.Mission.Goal)
		}
	})

	t.Run("Invalid integers fall back", func(t *testing.T) {
		t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
		t.Setenv("API_PORT", "not-a-port")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.APIPort != 8080 {
			t.Errorf("expected fallback port, got %d", cfg.APIPort)
		}
	})
}
