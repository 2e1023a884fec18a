package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.jsonc"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", s.BaseURL, DefaultBaseURL)
	}
	if s.Collection != DefaultCollection {
		t.Errorf("Collection = %q, want %q", s.Collection, DefaultCollection)
	}
	if !s.IsHistoryEnabled() {
		t.Error("history should be enabled by default")
	}
	if s.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", s.Timeout())
	}
}

func TestLoadSettings_CommentsAndTrailingCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	content := `{
  // local fixture
  "baseURL": "http://localhost:8080",
  "historyEnabled": false,
  "timeoutSeconds": 3,
}`
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", s.BaseURL)
	}
	if s.IsHistoryEnabled() {
		t.Error("history should be disabled")
	}
	if s.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", s.Timeout())
	}
	// Unset fields keep their defaults
	if s.Collection != DefaultCollection {
		t.Errorf("Collection = %q, want %q", s.Collection, DefaultCollection)
	}
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	if err := os.WriteFile(path, []byte(`{"baseURL": `), FilePermissions); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSettings_ApplyEnv(t *testing.T) {
	t.Setenv(envBaseURL, "http://127.0.0.1:9999")
	t.Setenv(envLogLevel, "debug")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.BaseURL != "http://127.0.0.1:9999" {
		t.Errorf("BaseURL = %q", s.BaseURL)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", s.LogLevel)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"ftp scheme", func(s *Settings) { s.BaseURL = "ftp://example.com" }, true},
		{"empty collection", func(s *Settings) { s.Collection = "/" }, true},
		{"negative timeout", func(s *Settings) { s.TimeoutSeconds = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitializeAt_WritesDefaultSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".postboard")
	if err := InitializeAt(dir); err != nil {
		t.Fatalf("InitializeAt() error = %v", err)
	}

	if DatabasePath != filepath.Join(dir, "postboard.db") {
		t.Errorf("DatabasePath = %q", DatabasePath)
	}

	s, err := LoadSettings(SettingsFile)
	if err != nil {
		t.Fatalf("default settings file does not parse: %v", err)
	}
	if s.MessageTimeout != 5 {
		t.Errorf("MessageTimeout = %d, want 5", s.MessageTimeout)
	}
}
