package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gordiva/internal/config"
	"gordiva/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Info("batch started", logging.String("source", "test"))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "gordiva.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "batch started") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleHandlerFormatsComponent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.WithComponent(logger, "checkin")
	logger.Info("descriptor written", logging.String("guid", "abc"))
	logger.Debug("suppressed at info level")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "checkin: descriptor written") {
		t.Fatalf("expected component-prefixed message, got %q", text)
	}
	if !strings.Contains(text, "guid=abc") {
		t.Fatalf("expected guid attribute, got %q", text)
	}
	if strings.Contains(text, "suppressed at info level") {
		t.Fatalf("expected debug message to be filtered, got %q", text)
	}
}

func TestJSONHandlerLowercasesLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "warn",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("tape skipped")
	logger.Info("filtered")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `"level":"warn"`) {
		t.Fatalf("expected lowercase level field, got %q", text)
	}
	if strings.Contains(text, "filtered") {
		t.Fatalf("expected info message to be filtered at warn level, got %q", text)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
