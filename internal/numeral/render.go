package numeral

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const growRender = 96 // estimated bytes for a typical rendering

var numeralPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// parts is a validated numeral split at the sign and decimal point.
type parts struct {
	negative    bool
	integer     string // leading zeros stripped; empty means zero
	fraction    string
	hasFraction bool
}

// intState is carried from one integer digit to the next.
type intState struct {
	prevDigit int
	prevUnit  string // unit actually written for the previous digit
	zeroRun   int    // consecutive zero digits ending at the previous digit
}

func render(text string, opts Options) (string, error) {
	p, err := decompose(text, opts.Currency)
	if err != nil {
		return "", &Error{Input: text, Err: err}
	}

	t := lookup(opts)

	var b strings.Builder
	b.Grow(growRender)

	if p.negative {
		b.WriteString(t.negative)
	}
	b.WriteString(t.integer(p.integer))

	frac := ""
	if p.hasFraction {
		frac = t.fractional(p.fraction)
	}

	if opts.Currency {
		b.WriteString(t.currency)
		if frac == "" {
			b.WriteString(t.even)
		} else {
			b.WriteString(frac)
		}
		return b.String(), nil
	}

	if frac != "" {
		b.WriteString(t.point)
		b.WriteString(frac)
	}
	return b.String(), nil
}

// decompose validates text and splits it. In currency mode the magnitude is
// rounded to guardPlaces and then cut to currencyPlaces before splitting.
func decompose(text string, currency bool) (parts, error) {
	if !numeralPattern.MatchString(text) {
		return parts{}, ErrFormat
	}

	var p parts
	body := text
	if body[0] == '-' {
		p.negative = true
		body = body[1:]
	}

	if currency {
		d, err := decimal.NewFromString(body)
		if err != nil {
			return parts{}, ErrFormat
		}
		body = d.Round(guardPlaces).Truncate(currencyPlaces).StringFixed(currencyPlaces)
	}

	integer, fraction, found := strings.Cut(body, ".")
	p.integer = strings.TrimLeft(integer, "0")
	p.fraction = fraction
	p.hasFraction = found

	if len(p.integer) > maxIntegerDigits || len(p.fraction) > maxFractionDigits {
		return parts{}, ErrMagnitudeOverflow
	}
	return p, nil
}

// integer renders the integer digits as a fold over step.
func (t *table) integer(digits string) string {
	if digits == "" {
		return t.zero
	}

	var (
		b     strings.Builder
		state intState
		piece string
	)
	count := len(digits)
	for i := 0; i < count; i++ {
		state, piece = t.step(state, i, count-1-i, int(digits[i]-'0'))
		b.WriteString(piece)
	}
	return b.String()
}

// step renders digit d at index i (0 = most significant) and position j
// from the right, returning the state for the next digit.
func (t *table) step(s intState, i, j, d int) (intState, string) {
	zeroRun := 0
	if d == 0 {
		zeroRun = s.zeroRun + 1
	}

	unit := t.units[j]
	if zeroRun >= groupSize || (d == 0 && j%groupSize != 0) {
		unit = ""
	}

	prefix := ""
	if i > 0 && d != 0 && s.prevDigit == 0 {
		prefix = t.zero
	}

	glyph := t.digits[d]
	if i == 0 && t.bareTen && d == 1 && unit == t.ten() {
		glyph = ""
	}
	if t.pair != "" && d == 2 && unit != "" && unit != t.ten() && unit != t.hundred() && s.prevUnit != t.ten() {
		glyph = t.pair
	}

	next := intState{prevDigit: d, prevUnit: unit, zeroRun: zeroRun}
	return next, prefix + glyph + unit
}

// fractional renders the digits after the decimal point. An empty result
// means nothing is worth writing after the integer part.
func (t *table) fractional(digits string) string {
	if digits == "0" {
		if t.fraction != nil {
			return ""
		}
		return t.zero
	}

	var b strings.Builder
	if t.fraction == nil {
		for i := 0; i < len(digits); i++ {
			d := digits[i] - '0'
			if d == 0 {
				b.WriteString(t.zero)
				continue
			}
			b.WriteString(t.digits[d])
		}
		return b.String()
	}

	for i := 0; i < len(digits) && i < len(t.fraction); i++ {
		d := digits[i] - '0'
		if d == 0 {
			continue
		}
		if i > 0 && digits[i-1] == '0' {
			b.WriteString(t.zero)
		}
		b.WriteString(t.digits[d])
		b.WriteString(t.fraction[i])
	}
	return b.String()
}
