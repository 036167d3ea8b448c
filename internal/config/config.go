// Package config loads application settings from a config.toml next to the
// executable, with built-in defaults when the file is absent and environment
// overrides layered on top.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Auth   AuthConfig   `toml:"auth"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig holds filesystem settings for the data directory.
type DataConfig struct {
	DataDir string `toml:"data_dir"`

	// MaxUploadMB caps the accepted upload size.
	MaxUploadMB int `toml:"max_upload_mb"`
}

// AuthConfig holds the configured users and session policy.
type AuthConfig struct {
	// SessionTimeoutMinutes is the idle timeout before a session token
	// expires.
	SessionTimeoutMinutes int    `toml:"session_timeout_minutes"`
	Users                 []User `toml:"users"`
}

// User is one configured login. Role is "admin" or "user".
type User struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Role     string `toml:"role"`
}

// LoadConfigInfo carries metadata about how the config was resolved.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults used when config.toml is absent.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    18080,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:     "data",
			MaxUploadMB: 50,
		},
		Auth: AuthConfig{
			SessionTimeoutMinutes: 30,
			Users: []User{
				{Username: "admin", Password: "admin123", Role: "admin"},
				{Username: "user", Password: "user12345", Role: "user"},
			},
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml from the executable's directory and
// returns resolution metadata alongside the config.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	// .env is optional; it only seeds the process environment for the
	// override pass below.
	_ = godotenv.Load()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)

	return config, info, nil
}

// LoadConfig loads config.toml from the executable's directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("MIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("MIS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("MIS_DEV_MODE"); v != "" {
		if dev, err := strconv.ParseBool(v); err == nil {
			config.Server.DevMode = dev
		}
	}
	if v := os.Getenv("MIS_SESSION_TIMEOUT_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			config.Auth.SessionTimeoutMinutes = minutes
		}
	}
}

// dataRoot resolves the data directory. A relative data_dir lives next to the
// executable; an absolute one is used as is.
func dataRoot(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir creates the data directory and its uploads subdirectory.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := dataRoot(config)

	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// GetDataPath builds a path under the configured data directory.
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(dataRoot(config), subdir, filename)
}
