package log

import (
	"bytes"
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	t.Run("respects level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewCustomLogger(&buf, LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "[WARN] warn message")
		assert.Contains(t, out, "[ERROR] error message")
	})

	t.Run("formats arguments", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewCustomLogger(&buf, LogLevelDebug)

		logger.Debug("routed query to %q (score=%.4f)", "billing", 0.9123)
		assert.Contains(t, buf.String(), `routed query to "billing" (score=0.9123)`)
	})

	t.Run("none level silences everything", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewCustomLogger(&buf, LogLevelNone)

		logger.Error("error message")
		assert.Empty(t, buf.String())
	})
}

func TestPackageLevelLogger(t *testing.T) {
	original := GetDefaultLogger()
	defer SetDefaultLogger(original)

	var buf bytes.Buffer
	SetDefaultLogger(NewCustomLogger(&buf, LogLevelDebug))

	Debug("debug via package")
	Info("info via package")
	Warn("warn via package")
	Error("error via package")

	out := buf.String()
	assert.Contains(t, out, "debug via package")
	assert.Contains(t, out, "info via package")
	assert.Contains(t, out, "warn via package")
	assert.Contains(t, out, "error via package")
}

func TestNoOpLogger(t *testing.T) {
	original := GetDefaultLogger()
	defer SetDefaultLogger(original)

	// Must not panic and must not write anywhere.
	SetDefaultLogger(&NoOpLogger{})
	Debug("ignored")
	Info("ignored")
	Warn("ignored")
	Error("ignored")
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Equal(t, "UNKNOWN(42)", LogLevel(42).String())
}

func TestGologLogger(t *testing.T) {
	t.Run("forwards to golog", func(t *testing.T) {
		var buf bytes.Buffer
		glogger := golog.New()
		glogger.SetOutput(&buf)
		glogger.SetLevel("debug")

		logger := NewGologLogger(glogger)
		logger.SetLevel(LogLevelDebug)

		logger.Info("routing %d destinations", 3)
		assert.Contains(t, buf.String(), "routing 3 destinations")
	})

	t.Run("wrapper level gates forwarding", func(t *testing.T) {
		var buf bytes.Buffer
		glogger := golog.New()
		glogger.SetOutput(&buf)

		logger := NewGologLogger(glogger)
		logger.SetLevel(LogLevelError)
		assert.Equal(t, LogLevelError, logger.GetLevel())

		logger.Info("suppressed")
		assert.NotContains(t, buf.String(), "suppressed")
	})
}
