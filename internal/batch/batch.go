// Package batch converts streams of numerals, one per line, and encodes
// the results.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/hanzinum/internal/numeral"
	"go.uber.org/zap"
	"golang.org/x/text/width"
)

// Result is the outcome of converting one input line.
type Result struct {
	Line   int    `json:"line" yaml:"line"`
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the line rendered.
func (r Result) OK() bool {
	return r.Error == ""
}

// Converter renders numerals line by line.
type Converter struct {
	opts     numeral.Options
	failFast bool
	logger   *zap.Logger
}

// NewConverter creates a converter. A nil logger discards log output.
func NewConverter(opts numeral.Options, failFast bool, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{opts: opts, failFast: failFast, logger: logger}
}

// Normalize trims s and folds full-width characters (１２３．４５, －) to
// their ASCII forms so pasted East Asian input validates.
func Normalize(s string) string {
	return width.Narrow.String(strings.TrimSpace(s))
}

// One renders a single numeral after normalizing it.
func (c *Converter) One(s string) (string, error) {
	return numeral.RenderOptions(Normalize(s), c.opts)
}

// Convert reads r line by line. Blank lines and lines starting with '#'
// are skipped. Lines that fail to render are kept in the results with
// their error, unless the converter fails fast, in which case the first
// failure is returned.
func (c *Converter) Convert(r io.Reader) ([]Result, error) {
	var results []Result

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		res := Result{Line: line, Input: raw}
		out, err := c.One(raw)
		if err != nil {
			if c.failFast {
				return results, fmt.Errorf("line %d: %w", line, err)
			}
			c.logger.Warn("skipping line", zap.Int("line", line), zap.String("input", raw), zap.Error(err))
			res.Error = err.Error()
		} else {
			res.Output = out
		}
		results = append(results, res)
	}

	if err := scanner.Err(); err != nil {
		return results, fmt.Errorf("reading input: %w", err)
	}

	c.logger.Debug("batch converted", zap.Int("lines", line), zap.Int("results", len(results)))
	return results, nil
}
