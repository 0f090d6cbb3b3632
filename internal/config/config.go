/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on load.

type BackendConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"` // 0 waits indefinitely
}

// HistoryConfig selects where the recipe history lives. The 20-entry cap is fixed.
type HistoryConfig struct {
	Store   string `yaml:"store"`    // "sqlite" | "file" | "preferences" | "memory"
	DataDir string `yaml:"data_dir"` // empty means the per-user data directory
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Backend       BackendConfig `yaml:"backend"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Store names accepted in history.store.
const (
	StoreSQLite      = "sqlite"
	StoreFile        = "file"
	StorePreferences = "preferences"
	StoreMemory      = "memory"
)

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Backend:       BackendConfig{Endpoint: "http://127.0.0.1:8000/generate-recipe", TimeoutMs: 0},
		History:       HistoryConfig{Store: StoreSQLite},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath       = "AICHEF_CONFIG"
	EnvBackendEndpoint  = "AICHEF_ENDPOINT"
	EnvBackendTimeoutMs = "AICHEF_TIMEOUT_MS"
	EnvHistoryStore     = "AICHEF_HISTORY_STORE"
	EnvDataDir          = "AICHEF_DATA_DIR"
	EnvTelemetryOptIn   = "AICHEF_TELEMETRY_OPT_IN"
	EnvTheme            = "AICHEF_THEME"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "AICHEF_LOG_LEVEL"
	EnvLogFormat = "AICHEF_LOG_FORMAT"
	EnvLogSource = "AICHEF_LOG_SOURCE"
	EnvLogFile   = "AICHEF_LOG_FILE"
)

// ConfigPath returns the per-user config file path. AICHEF_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "AIChef")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AIChef")
	default: // linux and others
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "aichef")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "aichef")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DataDir returns the directory holding the history store and crash reports.
func (c AppConfig) DataDir() (string, error) {
	if d := strings.TrimSpace(c.History.DataDir); d != "" {
		return d, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LocalAppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		base = filepath.Join(base, "AIChef")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AIChef")
	default:
		if x := os.Getenv("XDG_DATA_HOME"); x != "" {
			base = filepath.Join(x, "aichef")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".local", "share", "aichef")
		}
	}
	if strings.TrimSpace(base) == "" {
		return "", errors.New("cannot resolve data directory")
	}
	return base, nil
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides. A file that cannot be parsed is reported, but the
// returned config still carries defaults and overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit path.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	var perr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			perr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		perr = fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if perr != nil {
		return cfg, perr
	}
	return cfg, cfg.Validate()
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg to path, creating the directory if needed.
func SaveTo(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks enumerated fields.
func (c AppConfig) Validate() error {
	switch c.History.Store {
	case StoreSQLite, StoreFile, StorePreferences, StoreMemory:
	default:
		return fmt.Errorf("history.store: unknown store %q", c.History.Store)
	}
	switch c.General.Theme {
	case "system", "light", "dark":
	default:
		return fmt.Errorf("general.theme: unknown theme %q", c.General.Theme)
	}
	if c.Backend.TimeoutMs < 0 {
		return fmt.Errorf("backend.timeout_ms: must not be negative")
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = strings.ToLower(strings.TrimSpace(src.General.Theme))
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if strings.TrimSpace(src.Backend.Endpoint) != "" {
		dst.Backend.Endpoint = strings.TrimSpace(src.Backend.Endpoint)
	}
	if src.Backend.TimeoutMs != 0 {
		dst.Backend.TimeoutMs = src.Backend.TimeoutMs
	}
	if strings.TrimSpace(src.History.Store) != "" {
		dst.History.Store = strings.ToLower(strings.TrimSpace(src.History.Store))
	}
	if strings.TrimSpace(src.History.DataDir) != "" {
		dst.History.DataDir = strings.TrimSpace(src.History.DataDir)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvBackendEndpoint)); v != "" {
		cfg.Backend.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackendTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryStore)); v != "" {
		cfg.History.Store = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.History.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envByKey = map[string]string{
	"backend.endpoint":         EnvBackendEndpoint,
	"backend.timeout_ms":       EnvBackendTimeoutMs,
	"history.store":            EnvHistoryStore,
	"history.data_dir":         EnvDataDir,
	"general.telemetry_opt_in": EnvTelemetryOptIn,
	"general.theme":            EnvTheme,
	"logging.level":            EnvLogLevel,
	"logging.format":           EnvLogFormat,
	"logging.source":           EnvLogSource,
	"logging.file":             EnvLogFile,
}

// OverridableKeys lists, sorted, the config keys an environment variable can override.
func OverridableKeys() []string {
	keys := make([]string, 0, len(envByKey))
	for k := range envByKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envByKey[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// Timeout returns the request timeout; zero means none.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(b.TimeoutMs) * time.Millisecond
}
