package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LevelWarn
	cfg.Console = &buf

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown", zap.String("tool", "web_search"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %s", out)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("expected one JSON entry, got %q: %v", out, err)
	}
	if entry["msg"] != "shown" || entry["tool"] != "web_search" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bridge.log")
	cfg := DefaultConfig()
	cfg.Development = true
	cfg.OutputPath = path
	cfg.Console = &bytes.Buffer{}

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.With(zap.String("request_id", "r1")).Info("written")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"request_id":"r1"`) || !strings.Contains(string(data), `"level":"info"`) {
		t.Fatalf("unexpected file content: %s", data)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_DevelopmentConsoleIsText(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Development = true
	cfg.Console = &buf

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.With(zap.String("tool", "ask")).Info("plain")
	_ = log.Sync()

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("development console should not be JSON: %s", out)
	}
	if !strings.Contains(out, "plain") || !strings.Contains(out, `"tool": "ask"`) {
		t.Fatalf("unexpected console output: %s", out)
	}
}
