// Package numeral renders decimal numerals as written Chinese numerals.
//
// Two forms are supported:
//
//   - standard numerals (一百二十三點四五), the default;
//   - capital numerals for financial documents (壹佰貳拾叁元肆角伍分),
//     selected with Options.Currency.
//
// Either form can be written in Traditional (default) or Simplified
// glyphs via Options.Script.
//
// The integer part is read in groups of four digits (萬, 億, 萬億, 兆).
// Runs of zeros collapse to a single 零, numbers from 10 to 19 start with a
// bare 十, and 兩 replaces 二 before 千 and the group names unless it
// follows 十 (so 2014 is 兩千零一十四 but 120000 is 十二萬).
//
// In currency mode the value is rounded to five fractional places and the
// fifth place is dropped, so at most four sub-units (角, 分, 厘, 毫) are
// written. Whole amounts end in 元整.
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - The integer part may hold at most 19 significant digits (up to 百兆).
//   - A standard-mode fractional part may hold at most 19 digits.
//   - Input must be plain ASCII digits with an optional leading '-' and a
//     single '.'; thousands separators and exponents are rejected.
package numeral

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Script selects the glyph set used for the output.
type Script int

const (
	// Traditional writes 萬, 億, 兩, 貳, 負 and 點.
	Traditional Script = iota

	// Simplified writes 万, 亿, 两, 贰, 负 and 点.
	Simplified
)

// String returns the lowercase name of s.
func (s Script) String() string {
	switch s {
	case Traditional:
		return "traditional"
	case Simplified:
		return "simplified"
	}
	return fmt.Sprintf("Script(%d)", int(s))
}

// ParseScript parses a script name. It accepts "traditional", "simplified",
// their BCP 47 forms "zh-Hant" and "zh-Hans", and the short forms "t"/"s".
func ParseScript(name string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "traditional", "zh-hant", "t":
		return Traditional, nil
	case "simplified", "zh-hans", "s":
		return Simplified, nil
	}
	return Traditional, fmt.Errorf("numeral: unknown script %q", name)
}

// Options controls how a numeral is rendered. The zero value renders
// standard Traditional numerals.
type Options struct {
	Currency bool
	Script   Script
}

// Render converts text to Chinese numerals. When currency is true the
// capital form with 元/角/分/厘/毫 is produced.
//
// Render returns an error wrapping ErrFormat when text is not a decimal
// numeral, and ErrMagnitudeOverflow when either part has more digits than
// the unit tables cover.
func Render(text string, currency bool) (string, error) {
	return render(text, Options{Currency: currency})
}

// RenderOptions is Render with an explicit script.
func RenderOptions(text string, opts Options) (string, error) {
	return render(text, opts)
}

// RenderInt renders an integer.
func RenderInt(n int64, opts Options) (string, error) {
	return render(strconv.FormatInt(n, 10), opts)
}

// RenderDecimal renders d using its exact decimal expansion.
func RenderDecimal(d decimal.Decimal, opts Options) (string, error) {
	return render(d.String(), opts)
}
