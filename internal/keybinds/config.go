package keybinds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration
// Each section maps a key to an action name
type Config struct {
	Version   string            `json:"version"`
	Global    map[string]string `json:"global,omitempty"`
	Normal    map[string]string `json:"normal,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	Form      map[string]string `json:"form,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	Edit      map[string]string `json:"edit,omitempty"`
	History   map[string]string `json:"history,omitempty"`
	Help      map[string]string `json:"help,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"` // single-line inputs such as the history filter
}

// LoadConfig loads keybinding configuration from a JSON file.
// Comments and trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextNormal:    c.Normal,
		ContextSearch:    c.Search,
		ContextForm:      c.Form,
		ContextDetail:    c.Detail,
		ContextEdit:      c.Edit,
		ContextHistory:   c.History,
		ContextHelp:      c.Help,
		ContextConfirm:   c.Confirm,
		ContextTextInput: c.TextInput,
	}
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("context %s: %w", context, err)
			}
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("context %s, key %s: %w", context, key, err)
			}
			registry.Register(context, key, Action(actionStr))
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults exports the default bindings of every context as a config
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	export := func(ctx Context) map[string]string {
		out := make(map[string]string, len(r.bindings[ctx]))
		for key, action := range r.bindings[ctx] {
			out[key] = string(action)
		}
		return out
	}

	config.Global = export(ContextGlobal)
	config.Normal = export(ContextNormal)
	config.Search = export(ContextSearch)
	config.Form = export(ContextForm)
	config.Detail = export(ContextDetail)
	config.Edit = export(ContextEdit)
	config.History = export(ContextHistory)
	config.Help = export(ContextHelp)
	config.Confirm = export(ContextConfirm)
	config.TextInput = export(ContextTextInput)

	return config
}
