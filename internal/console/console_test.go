package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Log, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return Wrap(zap.New(core)), logs
}

func TestLog_DebugRequiresLevel(t *testing.T) {
	l, logs := observed()

	l.Debug("hidden %d", 1)
	assert.Equal(t, 0, logs.Len())

	l.DebugLevel = 1
	l.Debug("shown %d", 2)
	l.Printf("printf %s", "too")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "shown 2", entries[0].Message)
		assert.Equal(t, "printf too", entries[1].Message)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	}
}

func TestLog_Levels(t *testing.T) {
	l, logs := observed()

	l.Info("info")
	l.Warn("unresolved type %s", "GLsync")
	l.Error("failed")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "unresolved type GLsync", entries[1].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	}
}

func TestQuiet(t *testing.T) {
	l := Quiet()
	l.DebugLevel = 1
	// Nothing to observe; just make sure a no-op logger is safe to use.
	l.Debug("x")
	l.Warn("y")
	l.Sync()
}
