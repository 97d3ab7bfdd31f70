package logger

import (
	"bytes"
	"log"
	"testing"

	"sales-forecast/src/models"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarning, ParseLevel(" WARN "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&models.MConfig{LogLevel: "WARNING"}, "Pipeline")
	l.logger = log.New(&buf, "", 0)

	l.Info("skipped")
	l.Warning("kept %d", 1)
	l.Named("Forecaster").Error("failed")

	assert.Equal(t, "[Pipeline] WARNING: kept 1\n[Forecaster] ERROR: failed\n", buf.String())
}
