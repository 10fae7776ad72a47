// Package report renders ticketscan results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/ticketscan/internal/resolve"
	"github.com/shinji-kodama/ticketscan/internal/rules"
)

// Format selects the output encoding.
type Format string

const (
	// FormatText is a human-readable layout with aligned columns.
	FormatText Format = "text"

	// FormatJSON is indented JSON for machine consumption.
	FormatJSON Format = "json"

	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
)

// String returns the string representation of Format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat converts a string to a Format, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %q (valid: text, json, yaml)", s)
	}
}

// Report gathers the results of one run. Sections of computations that were
// not run are left nil and omitted from the output.
type Report struct {
	// Input is the notes file the results were computed from.
	Input string `json:"input" yaml:"input"`

	// ScanningErrorRate is the sum of nearby values matching no field.
	ScanningErrorRate *int `json:"scanningErrorRate,omitempty" yaml:"scanningErrorRate,omitempty"`

	// InvalidValues lists the values summed into ScanningErrorRate.
	InvalidValues []rules.InvalidValue `json:"invalidValues,omitempty" yaml:"invalidValues,omitempty"`

	// Resolution is the column assignment and product.
	Resolution *resolve.Resolution `json:"resolution,omitempty" yaml:"resolution,omitempty"`
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return enc.Close()
	case FormatText:
		return writeText(w, r)
	default:
		return fmt.Errorf("invalid format: %q", format)
	}
}

// writeText prints the report as:
//
//	Scanning error rate: 71
//	Invalid values:
//	  TICKET  COLUMN  VALUE
//	  1       1       4
//	Field assignment:
//	  COLUMN  FIELD
//	  0       row
//	Product of "departure" fields: 1
func writeText(w io.Writer, r *Report) error {
	var b strings.Builder

	if r.ScanningErrorRate != nil {
		fmt.Fprintf(&b, "Scanning error rate: %d\n", *r.ScanningErrorRate)
		if len(r.InvalidValues) > 0 {
			b.WriteString("Invalid values:\n")
			fmt.Fprintf(&b, "  %-8s%-8s%s\n", "TICKET", "COLUMN", "VALUE")
			for _, iv := range r.InvalidValues {
				fmt.Fprintf(&b, "  %-8d%-8d%d\n", iv.Ticket, iv.Column, iv.Value)
			}
		}
	}

	if res := r.Resolution; res != nil {
		b.WriteString("Field assignment:\n")
		fmt.Fprintf(&b, "  %-8s%s\n", "COLUMN", "FIELD")
		for _, col := range res.Assignment.Columns() {
			fmt.Fprintf(&b, "  %-8d%s\n", col, res.Assignment[col])
		}
		fmt.Fprintf(&b, "Product of %q fields: %d\n", res.Match, res.Product)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
