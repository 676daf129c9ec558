package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DUKANAM_API_URL", "")
	t.Setenv("DUKANAM_NOTIFICATION_INTERVAL", "")
	t.Setenv("DUKANAM_CHAT_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.NotificationInterval != 30*time.Second {
		t.Errorf("NotificationInterval = %v, want 30s", cfg.NotificationInterval)
	}
	if cfg.HistoryInterval != 5*time.Second {
		t.Errorf("HistoryInterval = %v, want 5s", cfg.HistoryInterval)
	}
	if cfg.ChatInterval != 3*time.Second {
		t.Errorf("ChatInterval = %v, want 3s", cfg.ChatInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DUKANAM_API_URL", "https://shop.example.in/api")
	t.Setenv("DUKANAM_NOTIFICATION_INTERVAL", "45s")
	t.Setenv("DUKANAM_CHAT_INTERVAL", "2")
	t.Setenv("DUKANAM_ENCRYPTION_KEY", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://shop.example.in/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.NotificationInterval != 45*time.Second {
		t.Errorf("NotificationInterval = %v, want 45s", cfg.NotificationInterval)
	}
	if cfg.ChatInterval != 2*time.Second {
		t.Errorf("ChatInterval = %v, want 2s", cfg.ChatInterval)
	}
	if cfg.EncryptionKey != "hunter2" {
		t.Errorf("EncryptionKey = %q", cfg.EncryptionKey)
	}
}

func TestGetDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("DUKANAM_HTTP_TIMEOUT", "soon")
	if got := getDuration("DUKANAM_HTTP_TIMEOUT", 15*time.Second); got != 15*time.Second {
		t.Errorf("getDuration = %v, want 15s", got)
	}
	t.Setenv("DUKANAM_HTTP_TIMEOUT", "-5s")
	if got := getDuration("DUKANAM_HTTP_TIMEOUT", 15*time.Second); got != 15*time.Second {
		t.Errorf("getDuration = %v, want 15s", got)
	}
}

func TestHTTPRetries(t *testing.T) {
	t.Setenv("DUKANAM_HTTP_RETRIES", "")
	cfg, _ := Load()
	if cfg.HTTPRetries != 0 {
		t.Errorf("HTTPRetries = %d, want 0", cfg.HTTPRetries)
	}

	t.Setenv("DUKANAM_HTTP_RETRIES", "3")
	cfg, _ = Load()
	if cfg.HTTPRetries != 3 {
		t.Errorf("HTTPRetries = %d, want 3", cfg.HTTPRetries)
	}

	t.Setenv("DUKANAM_HTTP_RETRIES", "-1")
	cfg, _ = Load()
	if cfg.HTTPRetries != 0 {
		t.Errorf("HTTPRetries = %d, want default on bad input", cfg.HTTPRetries)
	}
}
