package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Env != EnvLocal {
		t.Errorf("env: got %q, want local", cfg.App.Env)
	}
	if !cfg.IsLocal() || cfg.IsNotLocal() {
		t.Error("default environment must be local")
	}
	if cfg.Cache.PeriodsSize != 1000 {
		t.Errorf("cache size: got %d, want 1000", cfg.Cache.PeriodsSize)
	}
}

func TestNewConfig_EnvNormalizedToLower(t *testing.T) {
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Env != EnvProduction {
		t.Errorf("env: got %q, want production", cfg.App.Env)
	}
	if !cfg.IsNotLocal() {
		t.Error("production must not be local")
	}
}

func TestNewConfig_BasicClientsParsed(t *testing.T) {
	t.Setenv("AUTH_BASIC_CLIENTS", "front:frontpass,backoffice:bopass,malformed")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Auth.BasicClients) != 2 {
		t.Fatalf("got %d clients, want 2 (malformed pair skipped)", len(cfg.Auth.BasicClients))
	}
	if cfg.Auth.BasicClients[0].Username != "front" || cfg.Auth.BasicClients[0].Password != "frontpass" {
		t.Errorf("first client: got %+v", cfg.Auth.BasicClients[0])
	}
}

func TestNewConfig_TimezoneLoaded(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")

	if _, err := NewConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if TimeZone != time.UTC {
		t.Errorf("timezone: got %v, want UTC", TimeZone)
	}
}

func TestNewConfig_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	if _, err := NewConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if TimeZone != time.UTC {
		t.Errorf("timezone: got %v, want UTC fallback", TimeZone)
	}
}
