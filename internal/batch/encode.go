package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding for batch results.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatYAML}

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// Write encodes results to w.
func Write(w io.Writer, format Format, results []Result) error {
	switch format {
	case FormatText, "":
		return writeText(w, results)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if results == nil {
			results = []Result{}
		}
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatCSV:
		return writeCSV(w, results)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	}
	return fmt.Errorf("unknown format: %s", format)
}

// writeText prints one aligned row per result. Inputs are padded by display
// width so full-width input still lines up.
func writeText(w io.Writer, results []Result) error {
	col := 0
	for _, r := range results {
		if n := runewidth.StringWidth(r.Input); n > col {
			col = n
		}
	}

	for _, r := range results {
		value := r.Output
		if !r.OK() {
			value = "error: " + r.Error
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r.Input, col), value); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"line", "input", "output", "error"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{strconv.Itoa(r.Line), r.Input, r.Output, r.Error}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encoding CSV: %w", err)
	}
	return nil
}
