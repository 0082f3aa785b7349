package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	v.validateProvider(&cfg.Provider)
	v.validateServer(&cfg.Server)
	v.validateLogger(&cfg.Logger)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// addError adds a validation error.
func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) validateProvider(p *ProviderConfig) {
	env, ok := LegacyKeyEnv[p.Profile]
	if !ok {
		v.addError("provider.profile", fmt.Sprintf("unknown profile %q (available: %s)",
			p.Profile, strings.Join(Profiles(), ", ")))
	} else if strings.TrimSpace(p.APIKey) == "" {
		v.addError("provider.api_key",
			fmt.Sprintf("API key is required; set MODELBRIDGE_PROVIDER_API_KEY or %s", env))
	}

	v.validateURL("provider.api_base", p.APIBase)
	v.validateURL("provider.chat_api_base", p.ChatAPIBase)
	v.validateURL("provider.proxy", p.Proxy)
}

func (v *Validator) validateURL(field, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		v.addError(field, fmt.Sprintf("invalid URL: %v", err))
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		v.addError(field, "URL scheme must be http or https")
	}
	if u.Host == "" {
		v.addError(field, "URL host is required")
	}
}

func (v *Validator) validateServer(s *ServerConfig) {
	switch s.Transport {
	case TransportStdio:
		return
	case TransportHTTP:
	default:
		v.addError("server.transport", fmt.Sprintf("must be %q or %q, got %q", TransportStdio, TransportHTTP, s.Transport))
		return
	}

	if s.Port < 1 || s.Port > 65535 {
		v.addError("server.port", "port must be between 1 and 65535")
	}
	if !strings.HasPrefix(s.Path, "/") {
		v.addError("server.path", "path must start with /")
	}
	if s.JWTSecret != "" && len(s.JWTSecret) < MinJWTSecretLength {
		v.addError("server.jwt_secret", fmt.Sprintf("must be at least %d bytes", MinJWTSecretLength))
	}
}

// MinJWTSecretLength is the shortest accepted HS256 secret.
const MinJWTSecretLength = 32

func (v *Validator) validateLogger(l *LoggerConfig) {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}
	if !validLevels[l.Level] {
		v.addError("logger.level", fmt.Sprintf("invalid log level %q", l.Level))
	}
	if l.OutputPath != "" {
		if l.MaxSize < 0 {
			v.addError("logger.max_size", "must be non-negative")
		}
		if l.MaxBackups < 0 {
			v.addError("logger.max_backups", "must be non-negative")
		}
		if l.MaxAge < 0 {
			v.addError("logger.max_age", "must be non-negative")
		}
	}
}

// ValidateConfig is a convenience function to validate configuration.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.Validate(cfg)
}

// Profiles returns the known provider profile names, sorted.
func Profiles() []string {
	names := make([]string, 0, len(LegacyKeyEnv))
	for name := range LegacyKeyEnv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
