package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles configuration loading with Viper.
type Loader struct {
	viper *viper.Viper
}

// ConfigPathEnv names a config file when no path is given explicitly.
const ConfigPathEnv = "MODELBRIDGE_CONFIG_FILE"

// DotEnvFiles are loaded in order; earlier files and the real environment win.
var DotEnvFiles = []string{".env.local", ".env"}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set default config name and paths
	v.SetConfigName("config")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".modelbridge"))
	}
	v.AddConfigPath(".")

	// Environment variable settings
	v.SetEnvPrefix("MODELBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	return &Loader{viper: v}
}

// setDefaults registers every key so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("provider.profile", cfg.Provider.Profile)
	v.SetDefault("provider.api_key", cfg.Provider.APIKey)
	v.SetDefault("provider.api_base", cfg.Provider.APIBase)
	v.SetDefault("provider.chat_api_base", cfg.Provider.ChatAPIBase)
	v.SetDefault("provider.proxy", cfg.Provider.Proxy)
	v.SetDefault("provider.models.ask", cfg.Provider.Models.Ask)
	v.SetDefault("provider.models.ask_pro", cfg.Provider.Models.AskPro)
	v.SetDefault("provider.models.search", cfg.Provider.Models.Search)
	v.SetDefault("provider.models.reader", cfg.Provider.Models.Reader)
	v.SetDefault("provider.models.parse", cfg.Provider.Models.Parse)

	v.SetDefault("server.transport", cfg.Server.Transport)
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.path", cfg.Server.Path)
	v.SetDefault("server.jwt_secret", cfg.Server.JWTSecret)

	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.output_path", cfg.Logger.OutputPath)
	v.SetDefault("logger.max_size", cfg.Logger.MaxSize)
	v.SetDefault("logger.max_backups", cfg.Logger.MaxBackups)
	v.SetDefault("logger.max_age", cfg.Logger.MaxAge)
	v.SetDefault("logger.compress", cfg.Logger.Compress)
	v.SetDefault("logger.development", cfg.Logger.Development)
}

// Load loads the configuration from defaults, file, .env files and environment.
// If configPath is empty, the default paths are searched and a missing file is not an error.
func (l *Loader) Load(configPath string) (*Config, error) {
	if err := LoadDotEnv(DotEnvFiles...); err != nil {
		return nil, err
	}

	// Allow global override from environment.
	if strings.TrimSpace(configPath) == "" {
		configPath = strings.TrimSpace(os.Getenv(ConfigPathEnv))
	}
	explicitPath := strings.TrimSpace(configPath) != ""
	if explicitPath {
		l.viper.SetConfigFile(configPath)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Provider.Profile = strings.ToLower(strings.TrimSpace(cfg.Provider.Profile))
	if cfg.Provider.APIKey == "" {
		if env, ok := LegacyKeyEnv[cfg.Provider.Profile]; ok {
			cfg.Provider.APIKey = strings.TrimSpace(os.Getenv(env))
		}
	}

	return cfg, nil
}

// LoadDotEnv loads the given files without overriding variables already set.
// Missing files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// GetConfigPath returns the path of the loaded config file.
func (l *Loader) GetConfigPath() string {
	return l.viper.ConfigFileUsed()
}

// Set sets an override that takes precedence over file and environment.
func (l *Loader) Set(key string, value interface{}) {
	l.viper.Set(key, value)
}

// SetAddr splits host:port into server.host and server.port overrides.
func (l *Loader) SetAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port in address %q: %w", addr, err)
	}
	l.viper.Set("server.host", host)
	l.viper.Set("server.port", p)
	return nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// GetConfigHome returns the per-user configuration directory.
func GetConfigHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".modelbridge"), nil
}
