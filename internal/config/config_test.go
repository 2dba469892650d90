package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("GOOGLE_API_KEY", "test-key")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	defer os.Unsetenv("GOOGLE_API_KEY")
	defer os.Unsetenv("REDIS_HOST")
	defer os.Unsetenv("REDIS_PORT")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Google.APIKey != "test-key" || cfg.Redis.Host != "localhost" {
		t.Fatalf("unexpected config values: %+v", cfg)
	}
	if cfg.Session.TTL != 300*time.Second {
		t.Fatalf("expected 300s default session TTL, got %v", cfg.Session.TTL)
	}
	if cfg.Session.PrivilegedTTL != 7200*time.Second {
		t.Fatalf("expected 7200s privileged TTL, got %v", cfg.Session.PrivilegedTTL)
	}
	if cfg.Session.PrivilegedUser != "jollypolly" {
		t.Fatalf("unexpected privileged user %q", cfg.Session.PrivilegedUser)
	}
	if cfg.Geofence.RadiusMeters != 2000.0 {
		t.Fatalf("expected 2000m default radius, got %v", cfg.Geofence.RadiusMeters)
	}
	if cfg.Server.Port != "8008" {
		t.Fatalf("unexpected default port %q", cfg.Server.Port)
	}
}
