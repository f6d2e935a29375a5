package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOutput("debug", "json", buf)

	log.WithField("report_id", 7).Debug("Reports refreshed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Reports refreshed", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(7), entry["report_id"])
}

func TestNewWithOutput_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOutput("info", "TEXT", buf)

	log.Info("Starting report poller...")

	assert.Contains(t, buf.String(), `msg="Starting report poller..."`)
}

func TestNewWithOutput_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewWithOutput("verbose", "json", &bytes.Buffer{})

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
