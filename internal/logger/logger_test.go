package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	if l.Log == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected no-op logger before Init")
	}
}

func TestInit(t *testing.T) {
	l := New()
	if err := l.Init("warn"); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if l.Log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestInit_BadLevel(t *testing.T) {
	l := New()
	if err := l.Init("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
