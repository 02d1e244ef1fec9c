// Package config loads application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chmouel/lazychanges/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global lazychanges configuration options.
type AppConfig struct {
	Theme                  string // Theme name: see AvailableThemes in internal/theme
	DebugLog               string
	Editor                 string
	ShowIcons              bool // Render Nerd Font icons next to file names (default: true)
	AutoRefresh            bool // Watch the working tree and refresh the status automatically
	RefreshIntervalSeconds int  // Fallback polling interval when the watcher is unavailable
	ConfirmDiscard         bool // Ask for confirmation before discarding changes
	IgnoreFile             string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:                  theme.DefaultDark(),
		ShowIcons:              true,
		AutoRefresh:            true,
		RefreshIntervalSeconds: 10,
		ConfirmDiscard:         true,
		IgnoreFile:             ".gitignore",
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}
	if editor, ok := data["editor"].(string); ok {
		editor = strings.TrimSpace(editor)
		if editor != "" {
			cfg.Editor = editor
		}
	}
	if ignoreFile, ok := data["ignore_file"].(string); ok {
		ignoreFile = strings.TrimSpace(ignoreFile)
		if ignoreFile != "" {
			cfg.IgnoreFile = ignoreFile
		}
	}

	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	cfg.ConfirmDiscard = coerceBool(data["confirm_discard"], cfg.ConfirmDiscard)

	interval := coerceInt(data["refresh_interval_seconds"], cfg.RefreshIntervalSeconds)
	if interval > 0 {
		cfg.RefreshIntervalSeconds = interval
	}

	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Join(getConfigDir(), "lazychanges")
	configBase = filepath.Clean(configBase)

	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	var cfg *AppConfig

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from the user's own config flag or directory
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), nil
		}

		cfg = parseConfig(yamlData)
		break
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	return cfg, nil
}

// ApplyCLIOverrides applies key=value pairs from the command line on top of
// the loaded configuration. Unknown keys are rejected.
func ApplyCLIOverrides(cfg *AppConfig, overrides []string) error {
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found {
			return fmt.Errorf("invalid override %q, expected key=value", override)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "theme":
			normalized := NormalizeThemeName(value)
			if normalized == "" {
				return fmt.Errorf("unknown theme %q", value)
			}
			cfg.Theme = normalized
		case "debug_log":
			cfg.DebugLog = value
		case "editor":
			cfg.Editor = value
		case "ignore_file":
			if value != "" {
				cfg.IgnoreFile = value
			}
		case "show_icons":
			cfg.ShowIcons = coerceBool(value, cfg.ShowIcons)
		case "auto_refresh":
			cfg.AutoRefresh = coerceBool(value, cfg.AutoRefresh)
		case "confirm_discard":
			cfg.ConfirmDiscard = coerceBool(value, cfg.ConfirmDiscard)
		case "refresh_interval_seconds":
			if interval := coerceInt(value, 0); interval > 0 {
				cfg.RefreshIntervalSeconds = interval
			}
		default:
			return fmt.Errorf("unknown configuration key %q", key)
		}
	}
	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}
