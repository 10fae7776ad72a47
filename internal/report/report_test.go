package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/ticketscan/internal/model"
	"github.com/shinji-kodama/ticketscan/internal/resolve"
	"github.com/shinji-kodama/ticketscan/internal/rules"
)

func sampleReport() *Report {
	rate := 71
	return &Report{
		Input:             "inputData.txt",
		ScanningErrorRate: &rate,
		InvalidValues: []rules.InvalidValue{
			{Ticket: 1, Column: 1, Value: 4},
			{Ticket: 2, Column: 0, Value: 55},
		},
		Resolution: &resolve.Resolution{
			Assignment:   model.Assignment{0: "row", 1: "class", 2: "seat"},
			ValidTickets: 3,
			Match:        "departure",
			Product:      1,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		hasError bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false}, // case insensitive
		{" json ", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReport()))

	want := "Scanning error rate: 71\n" +
		"Invalid values:\n" +
		"  TICKET  COLUMN  VALUE\n" +
		"  1       1       4\n" +
		"  2       0       55\n" +
		"Field assignment:\n" +
		"  COLUMN  FIELD\n" +
		"  0       row\n" +
		"  1       class\n" +
		"  2       seat\n" +
		"Product of \"departure\" fields: 1\n"
	assert.Equal(t, want, buf.String())
}

// TestWrite_TextOmitsMissingSections verifies that a scan-only report prints
// no assignment table.
func TestWrite_TextOmitsMissingSections(t *testing.T) {
	r := sampleReport()
	r.Resolution = nil
	r.InvalidValues = nil

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, r))
	assert.Equal(t, "Scanning error rate: 71\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "inputData.txt", decoded["input"])
	assert.Equal(t, float64(71), decoded["scanningErrorRate"])

	res, ok := decoded["resolution"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), res["product"])
	assert.Equal(t, map[string]interface{}{"0": "row", "1": "class", "2": "seat"}, res["assignment"])
}

func TestWrite_JSONOmitsScanWhenNotRun(t *testing.T) {
	r := sampleReport()
	r.ScanningErrorRate = nil
	r.InvalidValues = nil

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, r))
	assert.NotContains(t, buf.String(), "scanningErrorRate")
	assert.Contains(t, buf.String(), "resolution")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleReport()))

	var decoded struct {
		Input             string `yaml:"input"`
		ScanningErrorRate int    `yaml:"scanningErrorRate"`
		Resolution        struct {
			Assignment map[int]string `yaml:"assignment"`
			Product    int64          `yaml:"product"`
		} `yaml:"resolution"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 71, decoded.ScanningErrorRate)
	assert.Equal(t, map[int]string{0: "row", 1: "class", 2: "seat"}, decoded.Resolution.Assignment)
	assert.Equal(t, int64(1), decoded.Resolution.Product)
}

func TestWrite_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Format("xml"), sampleReport()))
}
