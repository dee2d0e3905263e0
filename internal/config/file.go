package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort       string `toml:"server_port"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
	EnableRequestLog *bool  `toml:"enable_request_log"`
	DBPath           string `toml:"db_path"`
	LogRetentionDays *int   `toml:"log_retention_days"`
	MaxPromptTokens  *int   `toml:"max_prompt_tokens"`
	SiteURL          string `toml:"site_url"`
	AppTitle         string `toml:"app_title"`
	DefaultModel     string `toml:"default_model"`
	RequestStream    *bool  `toml:"request_stream"`
}

// ConfigPath returns the path to the config file (~/.chatstream/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	return loadFileAt(ConfigPath())
}

func loadFileAt(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# Chatstream Configuration
# Provider credentials are read from the environment (or a .env file):
#   AZURE_OPENAI_API_BASE_URL, AZURE_OPENAI_DEPLOYMENT, AZURE_OPENAI_API_KEY
#   OPENROUTER_API_URL, OPENROUTER_API_KEY, OPENROUTER_MODEL

# server_port = ":8080"
# log_level = "info"        # debug, info, warn, error
# log_format = "text"       # text, json

# Attribution headers sent upstream
# site_url = "https://github.com/mandalnilabja/chatstream"
# app_title = "Chatstream"

# OpenRouter model used when OPENROUTER_MODEL is unset
# default_model = "undi95/toppy-m-7b:free"

# Ask the provider for an event-stream response
# request_stream = false

# Reject conversations estimated above this many tokens (0 = no limit)
# max_prompt_tokens = 0

# Request metadata journal (no message content is stored)
# enable_request_log = false
# db_path = "~/.chatstream/chatstream.db"
# log_retention_days = 30
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
