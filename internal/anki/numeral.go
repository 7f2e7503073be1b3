package anki

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/f3rmion/hanzinum/internal/batch"
	"github.com/f3rmion/hanzinum/internal/numeral"
	"go.uber.org/zap"
)

// Fields added to augmented notes.
const (
	FieldStandard = "Numeral_Standard"
	FieldCapital  = "Numeral_Capital"
)

// NumeralFields lists the fields Apply adds, in order.
var NumeralFields = []string{FieldStandard, FieldCapital}

// detectSample bounds how many notes DetectNumberField looks at.
const detectSample = 10

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// AugmentedNote holds both renderings of one note's number.
type AugmentedNote struct {
	NoteID   int64  `json:"note_id"`
	Input    string `json:"input"`
	Standard string `json:"standard"`
	Capital  string `json:"capital"`
}

// Augmenter renders the numbers stored in a deck.
type Augmenter struct {
	script numeral.Script
	logger *zap.Logger
}

// NewAugmenter creates an augmenter. A nil logger discards log output.
func NewAugmenter(script numeral.Script, logger *zap.Logger) *Augmenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Augmenter{script: script, logger: logger}
}

// Augment renders the named field of every note that has it. Notes whose
// value is empty or not a number are skipped with a debug log entry.
func (a *Augmenter) Augment(p *Package, field string) []AugmentedNote {
	var results []AugmentedNote

	for _, note := range p.Notes {
		value := FieldNumber(p.GetFieldValue(note, field))
		if value == "" {
			continue
		}

		standard, err := numeral.RenderOptions(value, numeral.Options{Script: a.script})
		if err != nil {
			a.logger.Debug("skipping note", zap.Int64("note", note.ID), zap.String("value", value), zap.Error(err))
			continue
		}
		capital, err := numeral.RenderOptions(value, numeral.Options{Currency: true, Script: a.script})
		if err != nil {
			a.logger.Debug("skipping note", zap.Int64("note", note.ID), zap.String("value", value), zap.Error(err))
			continue
		}

		results = append(results, AugmentedNote{
			NoteID:   note.ID,
			Input:    value,
			Standard: standard,
			Capital:  capital,
		})
	}

	return results
}

// Apply adds NumeralFields to every model touched by results and fills
// them in. Every note of a touched model is padded to the new field
// count. It returns the number of notes updated.
func (p *Package) Apply(results []AugmentedNote) (int, error) {
	models := make(map[int64]bool)
	for _, r := range results {
		if note := p.GetNoteByID(r.NoteID); note != nil {
			models[note.ModelID] = true
		}
	}

	for id := range models {
		if _, err := p.AddFields(id, NumeralFields...); err != nil {
			return 0, fmt.Errorf("adding numeral fields: %w", err)
		}
		p.padNotes(id)
	}

	updated := 0
	for _, r := range results {
		note := p.GetNoteByID(r.NoteID)
		if note == nil {
			continue
		}
		if err := p.SetField(note, FieldStandard, r.Standard); err != nil {
			return updated, err
		}
		if err := p.SetField(note, FieldCapital, r.Capital); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// DetectNumberField returns the first field among the leading notes whose
// value renders as a numeral, or "" when none does.
func DetectNumberField(p *Package) string {
	for i, note := range p.Notes {
		if i >= detectSample {
			break
		}
		names := p.GetFieldNames(note)
		for j, value := range note.Fields {
			if j >= len(names) {
				break
			}
			v := FieldNumber(value)
			if v == "" {
				continue
			}
			if _, err := numeral.Render(v, false); err == nil {
				return names[j]
			}
		}
	}
	return ""
}

// FieldNumber extracts the candidate number from a raw field value.
func FieldNumber(value string) string {
	v := StripHTML(value)
	v = strings.ReplaceAll(v, "&nbsp;", "")
	return batch.Normalize(v)
}

// StripHTML removes HTML tags from a string.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}
