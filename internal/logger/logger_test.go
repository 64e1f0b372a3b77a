package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_Development(t *testing.T) {
	log, err := New(Options{Development: true})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	if !log.Core().Enabled(zap.DebugLevel) {
		t.Error("development logger should log debug")
	}

	// Should not panic
	log.Info("test message")
}

func TestNew_Production(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log.Core().Enabled(zap.InfoLevel) {
		t.Error("production logger should stay quiet below warn")
	}
	if !log.Core().Enabled(zap.WarnLevel) {
		t.Error("production logger should log warnings")
	}
}

func TestNew_Level(t *testing.T) {
	log, err := New(Options{Level: "info", Encoding: "console"})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if !log.Core().Enabled(zap.InfoLevel) {
		t.Error("expected info level enabled")
	}
	if log.Core().Enabled(zap.DebugLevel) {
		t.Error("expected debug level disabled")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}
