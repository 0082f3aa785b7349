package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider.APIKey = "key"
	return cfg
}

func hasField(err error, field string) bool {
	validationErrors, ok := err.(ValidationErrors)
	if !ok {
		return false
	}
	for _, validationErr := range validationErrors {
		if validationErr.Field == field {
			return true
		}
	}
	return false
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfig_UnknownProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.Profile = "openai"

	err := ValidateConfig(cfg)
	if !hasField(err, "provider.profile") {
		t.Fatalf("expected profile validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "gemini, zai") {
		t.Fatalf("expected available profiles in message, got %v", err)
	}
}

func TestValidateConfig_MissingKeyNamesLegacyEnv(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.Profile = "gemini"
	cfg.Provider.APIKey = ""

	err := ValidateConfig(cfg)
	if !hasField(err, "provider.api_key") || !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Fatalf("expected api key error naming GOOGLE_API_KEY, got %v", err)
	}
}

func TestValidateConfig_HTTPTransport(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Transport = TransportHTTP
	cfg.Server.Port = 70000
	cfg.Server.Path = "mcp"

	err := ValidateConfig(cfg)
	if !hasField(err, "server.port") || !hasField(err, "server.path") {
		t.Fatalf("expected port and path errors, got %v", err)
	}

	cfg.Server.Transport = "grpc"
	if err := ValidateConfig(cfg); !hasField(err, "server.transport") {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestValidateConfig_LoggerAndURLs(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	cfg.Provider.APIBase = "ftp://example.com"
	cfg.Provider.Proxy = "http://"

	err := ValidateConfig(cfg)
	for _, field := range []string{"logger.level", "provider.api_base", "provider.proxy"} {
		if !hasField(err, field) {
			t.Fatalf("expected %s error, got %v", field, err)
		}
	}
}

func TestValidateConfig_ShortJWTSecret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.APIKey = "k"
	cfg.Server.Transport = TransportHTTP
	cfg.Server.JWTSecret = "short"

	err := ValidateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "server.jwt_secret") {
		t.Fatalf("expected jwt_secret error, got %v", err)
	}

	cfg.Server.JWTSecret = strings.Repeat("s", MinJWTSecretLength)
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
