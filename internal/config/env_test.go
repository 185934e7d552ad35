package config

import "testing"

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("INTERNSHIP_SLOT_LIMIT", "75")
	t.Setenv("REDIS_ENABLED", "true")

	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Database.DBName = "pandu"

	if err := applyEnvOverrides(&cfg); err != nil {
		t.Fatalf("applyEnvOverrides returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Internship.SlotLimit != 75 {
		t.Errorf("Internship.SlotLimit = %d, want 75", cfg.Internship.SlotLimit)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis.Enabled should be true")
	}
	// Fields without a matching env var keep their value.
	if cfg.Database.DBName != "pandu" {
		t.Errorf("Database.DBName = %s, want pandu", cfg.Database.DBName)
	}
}

func TestApplyEnvOverrides_BadValue(t *testing.T) {
	t.Setenv("INTERNSHIP_SLOT_LIMIT", "lima puluh")

	var cfg Config
	if err := applyEnvOverrides(&cfg); err == nil {
		t.Error("expected error for a non-numeric integer override, got nil")
	}
}
