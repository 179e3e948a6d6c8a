package applog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Logger_filtersBelowMin(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("should not appear")
	l.Info("should not appear either")
	assert.Empty(t, buf.String())

	l.Warn("visible warning")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "visible warning")
}

func Test_Logger_formatsArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)

	l.Error("failed after %d attempts", 3)
	assert.True(t, strings.Contains(buf.String(), "failed after 3 attempts"))
}

func Test_Level_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}
