package configs

import (
	"os"
	"path/filepath"
)

// ConfigPathEnv overrides the location of the config file.
const ConfigPathEnv = "ENV_TO_GITHUB_SECRETS_CONFIG"

type Settings struct {
	ConfigPath string
}

var ToolSettings *Settings

func init() {
	ToolSettings = &Settings{ConfigPath: defaultConfigPath()}
}

func defaultConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "env-to-github-secrets", "config.toml")
}

// LoadToolConfig loads the config file named by ToolSettings.
func LoadToolConfig() (*Config, error) {
	return LoadConfig(ToolSettings.ConfigPath)
}
