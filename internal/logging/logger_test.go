package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	quiet := New(Options{Writer: &bytes.Buffer{}})
	assert.True(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel))

	verbose := New(Options{Verbose: true, Writer: &bytes.Buffer{}})
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

// TestNew_JSONCarriesRunID verifies that each entry is tagged with a valid
// UUID run id.
func TestNew_JSONCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{JSON: true, Writer: &buf})

	logger.Info("Scanning error", zap.Int("value", 71))
	require.NoError(t, logger.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Scanning error", entry["msg"])
	assert.Equal(t, float64(71), entry["value"])

	id, ok := entry[RunIDKey].(string)
	require.True(t, ok, "run_id should be a string")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNew_DistinctRunIDs(t *testing.T) {
	var a, b bytes.Buffer
	New(Options{JSON: true, Writer: &a}).Info("x")
	New(Options{JSON: true, Writer: &b}).Info("x")

	var ea, eb map[string]interface{}
	require.NoError(t, json.Unmarshal(a.Bytes(), &ea))
	require.NoError(t, json.Unmarshal(b.Bytes(), &eb))
	assert.NotEqual(t, ea[RunIDKey], eb[RunIDKey])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Verbose: true, Writer: &buf})
	logger.Debug("filtered nearby tickets", zap.Int("valid", 3))

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "filtered nearby tickets")
	assert.True(t, strings.Contains(out, `"valid"`), "fields should be rendered: %s", out)
	assert.Contains(t, out, RunIDKey)
}
