package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "test_bot_token")
	t.Setenv("TELEGRAM_CHAT_ID", "test_chat_id")
	t.Setenv("JELLYFIN_BASE_URL", "http://test-jellyfin.com")
	t.Setenv("JELLYFIN_API_KEY", "test_api_key")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
	}{
		{
			name:    "all required env vars set",
			setup:   setRequiredEnv,
			wantErr: false,
		},
		{
			name: "missing required env var",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				os.Unsetenv("TELEGRAM_BOT_TOKEN")
			},
			wantErr: true,
		},
		{
			name: "malformed day threshold",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("EPISODE_PREMIERED_WITHIN_X_DAYS", "seven")
			},
			wantErr: true,
		},
		{
			name: "zero day threshold rejected",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("SEASON_ADDED_WITHIN_X_DAYS", "0")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && cfg == nil {
				t.Error("Load() returned nil config without error")
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EpisodePremieredWithinDays != 7 {
		t.Errorf("EpisodePremieredWithinDays = %d, want 7", cfg.EpisodePremieredWithinDays)
	}
	if cfg.SeasonAddedWithinDays != 3 {
		t.Errorf("SeasonAddedWithinDays = %d, want 3", cfg.SeasonAddedWithinDays)
	}
	if cfg.NotifiedMaxEntries != 100 {
		t.Errorf("NotifiedMaxEntries = %d, want 100", cfg.NotifiedMaxEntries)
	}
	if cfg.ServerPort != "0.0.0.0:3000" {
		t.Errorf("ServerPort = %q, want 0.0.0.0:3000", cfg.ServerPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EPISODE_PREMIERED_WITHIN_X_DAYS", "14")
	t.Setenv("SEASON_ADDED_WITHIN_X_DAYS", "5")
	t.Setenv("NOTIFIED_MAX_ENTRIES", "250")
	t.Setenv("DATA_DIR", "/var/lib/jellygram")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EpisodePremieredWithinDays != 14 {
		t.Errorf("EpisodePremieredWithinDays = %d, want 14", cfg.EpisodePremieredWithinDays)
	}
	if cfg.SeasonAddedWithinDays != 5 {
		t.Errorf("SeasonAddedWithinDays = %d, want 5", cfg.SeasonAddedWithinDays)
	}
	if cfg.NotifiedMaxEntries != 250 {
		t.Errorf("NotifiedMaxEntries = %d, want 250", cfg.NotifiedMaxEntries)
	}
	if got := cfg.NotifiedItemsPath(); got != "/var/lib/jellygram/notified_items.json" {
		t.Errorf("NotifiedItemsPath() = %q", got)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JELLYFIN_BASE_URL", "http://test-jellyfin.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JellyfinBaseURL != "http://test-jellyfin.com" {
		t.Errorf("JellyfinBaseURL = %q, want trailing slash trimmed", cfg.JellyfinBaseURL)
	}
}
