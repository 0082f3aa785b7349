// Package config provides configuration management for modelbridge.
// It uses Viper for layered loading:
// - Built-in defaults
// - Optional config file (JSON, YAML, TOML)
// - .env files and environment variables
// - Explicit overrides from the command line
package config

// Config represents the complete modelbridge configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" json:"provider" yaml:"provider"`
	Server   ServerConfig   `mapstructure:"server" json:"server" yaml:"server"`
	Logger   LoggerConfig   `mapstructure:"logger" json:"logger" yaml:"logger"`
}

// ProviderConfig selects the upstream profile and its credential.
type ProviderConfig struct {
	Profile     string       `mapstructure:"profile" json:"profile" yaml:"profile"`
	APIKey      string       `mapstructure:"api_key" json:"api_key" yaml:"api_key"`
	APIBase     string       `mapstructure:"api_base" json:"api_base" yaml:"api_base"`
	ChatAPIBase string       `mapstructure:"chat_api_base" json:"chat_api_base" yaml:"chat_api_base"`
	Proxy       string       `mapstructure:"proxy" json:"proxy" yaml:"proxy"`
	Models      ModelsConfig `mapstructure:"models" json:"models" yaml:"models"`

	// Headers are sent on every upstream request. Credential headers win.
	Headers map[string]string `mapstructure:"headers" json:"headers,omitempty" yaml:"headers,omitempty"`
}

// ModelsConfig overrides the preset model per tool. Empty keeps the preset.
type ModelsConfig struct {
	Ask    string `mapstructure:"ask" json:"ask" yaml:"ask"`
	AskPro string `mapstructure:"ask_pro" json:"ask_pro" yaml:"ask_pro"`
	Search string `mapstructure:"search" json:"search" yaml:"search"`
	Reader string `mapstructure:"reader" json:"reader" yaml:"reader"`
	Parse  string `mapstructure:"parse" json:"parse" yaml:"parse"`
}

// ServerConfig configures the MCP transport.
type ServerConfig struct {
	Transport string `mapstructure:"transport" json:"transport" yaml:"transport"`
	Host      string `mapstructure:"host" json:"host" yaml:"host"`
	Port      int    `mapstructure:"port" json:"port" yaml:"port"`
	Path      string `mapstructure:"path" json:"path" yaml:"path"`
	// JWTSecret enables HS256 bearer authentication on the http transport.
	JWTSecret string `mapstructure:"jwt_secret" json:"jwt_secret" yaml:"jwt_secret"`
}

// LoggerConfig configures logging.
type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level"`
	OutputPath  string `mapstructure:"output_path" json:"output_path" yaml:"output_path"`
	MaxSize     int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
	Development bool   `mapstructure:"development" json:"development" yaml:"development"`
}

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Provider profiles and the environment variable each one falls back to
// when provider.api_key is empty.
var LegacyKeyEnv = map[string]string{
	"zai":    "ZAI_API_KEY",
	"gemini": "GOOGLE_API_KEY",
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Profile: "zai",
		},
		Server: ServerConfig{
			Transport: TransportStdio,
			Host:      "127.0.0.1",
			Port:      8931,
			Path:      "/mcp",
		},
		Logger: LoggerConfig{
			Level:      "info",
			OutputPath: "",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Addr returns host:port for the HTTP transport.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
