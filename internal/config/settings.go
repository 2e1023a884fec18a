package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/studiowebux/postboard/internal/types"
	"github.com/tidwall/jsonc"
)

const (
	DefaultBaseURL        = "https://jsonplaceholder.typicode.com"
	DefaultCollection     = "posts"
	DefaultTimeoutSeconds = 10
	DefaultLogLevel       = "info"

	envBaseURL  = "POSTBOARD_BASE_URL"
	envLogLevel = "POSTBOARD_LOG_LEVEL"
)

// Settings is the content of config.jsonc
type Settings struct {
	BaseURL        string           `json:"baseURL"`
	Collection     string           `json:"collection"`
	TimeoutSeconds int              `json:"timeoutSeconds"`
	HistoryEnabled *bool            `json:"historyEnabled,omitempty"`
	LogLevel       string           `json:"logLevel"`
	MessageTimeout int              `json:"messageTimeout"`
	CheckUpdates   bool             `json:"checkUpdates"`
	TLS            *types.TLSConfig `json:"tls,omitempty"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() *Settings {
	enabled := true
	return &Settings{
		BaseURL:        DefaultBaseURL,
		Collection:     DefaultCollection,
		TimeoutSeconds: DefaultTimeoutSeconds,
		HistoryEnabled: &enabled,
		LogLevel:       DefaultLogLevel,
	}
}

// LoadSettings reads a settings file. Comments and trailing commas are allowed.
// A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	settings.fillDefaults()
	return settings, nil
}

// ApplyEnv overrides settings from POSTBOARD_* environment variables
func (s *Settings) ApplyEnv() {
	if v := os.Getenv(envBaseURL); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		s.LogLevel = v
	}
}

// Validate checks that the settings can drive a client
func (s *Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseURL %q: %w", s.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid baseURL %q: scheme must be http or https", s.BaseURL)
	}
	if strings.Trim(s.Collection, "/") == "" {
		return fmt.Errorf("collection must not be empty")
	}
	if s.TimeoutSeconds < 0 {
		return fmt.Errorf("timeoutSeconds must not be negative")
	}
	return nil
}

// MessageDuration returns how long status messages stay visible; zero keeps them
func (s *Settings) MessageDuration() time.Duration {
	if s.MessageTimeout <= 0 {
		return 0
	}
	return time.Duration(s.MessageTimeout) * time.Second
}

// Timeout returns the per-request timeout
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// IsHistoryEnabled reports whether remote reads are logged to the database
func (s *Settings) IsHistoryEnabled() bool {
	return s.HistoryEnabled == nil || *s.HistoryEnabled
}

func (s *Settings) fillDefaults() {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Collection == "" {
		s.Collection = DefaultCollection
	}
	if s.TimeoutSeconds == 0 {
		s.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
}
