package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDevelopmentIsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, "")

	log.Debug("camera listed", "count", 2)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="camera listed"`)
	assert.Contains(t, buf.String(), "count=2")
}

func TestNewProductionIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "")

	log.Debug("hidden")
	log.Info("camera created", "camera_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "camera created", entry["msg"])
	assert.Equal(t, float64(7), entry["camera_id"])
	assert.NotContains(t, buf.String(), "hidden")
}
