package config

import (
	"os"
	"strconv"
)

// Defaults applied when neither env nor file set a value.
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultSiteURL          = "https://github.com/mandalnilabja/chatstream"
	DefaultAppTitle         = "Chatstream"
	DefaultModel            = "undi95/toppy-m-7b:free"
	DefaultLogRetentionDays = 30
)

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// LogLevel is one of debug, info, warn, error
	LogLevel string

	// LogFormat is text or json
	LogFormat string

	// EnableRequestLog stores request metadata in SQLite
	EnableRequestLog bool

	// DBPath is the SQLite file used by the request log
	DBPath string

	// LogRetentionDays prunes request logs older than this at startup; 0 keeps all
	LogRetentionDays int

	// MaxPromptTokens rejects conversations estimated above this size; 0 disables
	MaxPromptTokens int

	// SiteURL and AppTitle identify this app to the provider
	SiteURL  string
	AppTitle string

	// DefaultModel is the OpenRouter model used when OPENROUTER_MODEL is unset
	DefaultModel string

	// RequestStream asks the provider for an SSE response ("stream": true)
	RequestStream bool
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, err := LoadFile()
	if err != nil || fileConfig == nil {
		fileConfig = &FileConfig{} // Unreadable file, use defaults
	}
	return fromSources(os.Getenv, fileConfig)
}

// fromSources merges env and file values over the defaults.
func fromSources(getenv func(string) string, fc *FileConfig) *Config {
	return &Config{
		ServerPort:       getEnvOrFile(getenv, "SERVER_PORT", fc.ServerPort, DefaultServerPort),
		LogLevel:         getEnvOrFile(getenv, "LOG_LEVEL", fc.LogLevel, DefaultLogLevel),
		LogFormat:        getEnvOrFile(getenv, "LOG_FORMAT", fc.LogFormat, DefaultLogFormat),
		EnableRequestLog: getEnvBoolOrFile(getenv, "ENABLE_REQUEST_LOG", fc.EnableRequestLog, false),
		DBPath:           getEnvOrFile(getenv, "DB_PATH", fc.DBPath, DBPath()),
		LogRetentionDays: getEnvIntOrFile(getenv, "LOG_RETENTION_DAYS", fc.LogRetentionDays, DefaultLogRetentionDays),
		MaxPromptTokens:  getEnvIntOrFile(getenv, "MAX_PROMPT_TOKENS", fc.MaxPromptTokens, 0),
		SiteURL:          getEnvOrFile(getenv, "SITE_URL", fc.SiteURL, DefaultSiteURL),
		AppTitle:         getEnvOrFile(getenv, "APP_TITLE", fc.AppTitle, DefaultAppTitle),
		DefaultModel:     getEnvOrFile(getenv, "DEFAULT_MODEL", fc.DefaultModel, DefaultModel),
		RequestStream:    getEnvBoolOrFile(getenv, "REQUEST_STREAM", fc.RequestStream, false),
	}
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(getenv func(string) string, key, fileValue, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(getenv func(string) string, key string, fileValue *bool, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvIntOrFile returns env int, file int, or default (in priority order).
// Unparsable env values are ignored.
func getEnvIntOrFile(getenv func(string) string, key string, fileValue *int, defaultValue int) int {
	if value := getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	if fileValue != nil && *fileValue >= 0 {
		return *fileValue
	}
	return defaultValue
}
