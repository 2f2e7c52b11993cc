package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Str("employee_id", "4").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "booking-api", entry["service"])
	assert.Equal(t, "4", entry["employee_id"])
}

func TestNewWithWriterUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", false)

	log.Debug().Msg("debug")
	assert.Empty(t, buf.String())

	log.Info().Msg("info")
	assert.Contains(t, buf.String(), `"message":"info"`)
}
