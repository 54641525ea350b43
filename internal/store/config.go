package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultAnalysisModel = "gemini-1.5-flash"
	DefaultScenarioModel = "gemini-1.5-pro"
	DefaultChatModel     = "gemini-1.5-flash"
	DefaultAPIKeyEnv     = "GEMINI_API_KEY"
)

type GlobalConfig struct {
	// AI configures the analysis, scenario and chat collaborators.
	AI *AIConfig `json:"ai,omitempty"`

	// TUI holds optional user preferences for the interactive desktop.
	TUI *TUIConfig `json:"tui,omitempty"`

	Log *LogConfig `json:"log,omitempty"`
}

type AIConfig struct {
	// APIKeyEnv names the environment variable holding the Gemini API key.
	// The key itself is never written to the config file.
	APIKeyEnv     string `json:"apiKeyEnv,omitempty"`
	AnalysisModel string `json:"analysisModel,omitempty"`
	ScenarioModel string `json:"scenarioModel,omitempty"`
	ChatModel     string `json:"chatModel,omitempty"`
}

type TUIConfig struct {
	// Theme is "light", "dark" or "auto".
	Theme string `json:"theme,omitempty"`
	// DoubleClickMillis is the max gap between two clicks that open an item.
	DoubleClickMillis int `json:"doubleClickMillis,omitempty"`
}

type LogConfig struct {
	File  string `json:"file,omitempty"`
	Level string `json:"level,omitempty"`
}

// AISettings returns the AI config with defaults filled in.
func (c *GlobalConfig) AISettings() AIConfig {
	out := AIConfig{}
	if c != nil && c.AI != nil {
		out = *c.AI
	}
	if strings.TrimSpace(out.APIKeyEnv) == "" {
		out.APIKeyEnv = DefaultAPIKeyEnv
	}
	if strings.TrimSpace(out.AnalysisModel) == "" {
		out.AnalysisModel = DefaultAnalysisModel
	}
	if strings.TrimSpace(out.ScenarioModel) == "" {
		out.ScenarioModel = DefaultScenarioModel
	}
	if strings.TrimSpace(out.ChatModel) == "" {
		out.ChatModel = DefaultChatModel
	}
	return out
}

// APIKey resolves the Gemini key from the configured environment variable.
func (c AIConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

func (c *GlobalConfig) TUISettings() TUIConfig {
	out := TUIConfig{}
	if c != nil && c.TUI != nil {
		out = *c.TUI
	}
	if out.DoubleClickMillis <= 0 {
		out.DoubleClickMillis = 400
	}
	return out
}

func (c *GlobalConfig) LogSettings() LogConfig {
	out := LogConfig{}
	if c != nil && c.Log != nil {
		out = *c.Log
	}
	if strings.TrimSpace(out.Level) == "" {
		out.Level = "info"
	}
	return out
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.casedesk).
	if v := strings.TrimSpace(os.Getenv("CASEDESK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".casedesk"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads config.json. A missing file yields an empty config.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
