package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects how runners write their results.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// Structured reports whether f is a machine readable format.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Write encodes v to w in format f. Pretty falls back to indented JSON.
func Write(w io.Writer, f Format, v any) error {
	if w == nil {
		w = color.Output
	}
	switch f {
	case FormatYAML:
		// Go through JSON so YAML keys match the JSON field names.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("printers: encode yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("printers: encode yaml: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("printers: encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("printers: encode json: %w", err)
		}
		return nil
	}
}
