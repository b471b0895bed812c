package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configEnvVars = []string{
	"DB_DRIVER", "DB_PATH", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"SYNC_BASE_URL", "SYNC_API_KEY", "SYNC_HTTP_TIMEOUT", "SYNC_TX_TIMEOUT", "SYNC_INTERVAL",
	"SEARCH_DEFAULT_LIMIT", "SEARCH_MAX_LIMIT",
}

// isolate clears every config variable for the test and moves it into an
// empty directory so no .env file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "default values",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "novelcore.db"))
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.DBDriver == "sqlite" &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.SyncBaseURL == "" &&
					!cfg.SyncEnabled() &&
					cfg.SyncHTTPTimeout == 30*time.Second &&
					cfg.SyncTxTimeout == 60*time.Second &&
					cfg.SyncInterval == 0 &&
					cfg.SearchDefaultLimit == 100 &&
					cfg.SearchMaxLimit == 500
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "custom", "db.db"))
				t.Setenv("DB_DRIVER", "sqlite3")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
				t.Setenv("SYNC_BASE_URL", "https://sync.example.com/api/")
				t.Setenv("SYNC_API_KEY", "secret")
				t.Setenv("SYNC_INTERVAL", "5m")
				t.Setenv("SEARCH_DEFAULT_LIMIT", "20")
				t.Setenv("SEARCH_MAX_LIMIT", "200")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.DBDriver == "sqlite3" &&
					filepath.Base(cfg.DBPath) == "db.db" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.SyncBaseURL == "https://sync.example.com/api" &&
					cfg.SyncEnabled() &&
					cfg.SyncAPIKey == "secret" &&
					cfg.SyncInterval == 5*time.Minute &&
					cfg.SearchDefaultLimit == 20 &&
					cfg.SearchMaxLimit == 200
			},
		},
		{
			name: "unknown DB_DRIVER",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_DRIVER", "postgres")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "relative SYNC_BASE_URL",
			setupEnv: func(t *testing.T) {
				t.Setenv("SYNC_BASE_URL", "sync.example.com")
			},
			wantErr: true,
		},
		{
			name: "invalid SYNC_HTTP_TIMEOUT",
			setupEnv: func(t *testing.T) {
				t.Setenv("SYNC_HTTP_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "zero SYNC_TX_TIMEOUT",
			setupEnv: func(t *testing.T) {
				t.Setenv("SYNC_TX_TIMEOUT", "0s")
			},
			wantErr: true,
		},
		{
			name: "negative SYNC_INTERVAL",
			setupEnv: func(t *testing.T) {
				t.Setenv("SYNC_INTERVAL", "-1m")
			},
			wantErr: true,
		},
		{
			name: "invalid SEARCH_MAX_LIMIT",
			setupEnv: func(t *testing.T) {
				t.Setenv("SEARCH_MAX_LIMIT", "many")
			},
			wantErr: true,
		},
		{
			name: "default limit above max limit",
			setupEnv: func(t *testing.T) {
				t.Setenv("SEARCH_DEFAULT_LIMIT", "600")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolate(t)

	// Use a temporary directory for testing
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test", "db.db")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check that directory was created
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NOVELCORE_TEST_ENV_VAR", tt.value)
			got := getEnv("NOVELCORE_TEST_ENV_VAR", tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{value: "", want: 7 * time.Second},
		{value: "0", want: 0},
		{value: "90s", want: 90 * time.Second},
		{value: "later", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("NOVELCORE_TEST_DURATION", tt.value)
			got, err := getDuration("NOVELCORE_TEST_DURATION", 7*time.Second)
			if (err != nil) != tt.wantErr {
				t.Fatalf("getDuration(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("getDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
