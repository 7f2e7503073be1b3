package anki

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AddFields appends the named fields to a model, skipping any it already
// has. It reports how many fields were added.
func (p *Package) AddFields(modelID int64, names ...string) (int, error) {
	model, ok := p.Models[modelID]
	if !ok {
		return 0, fmt.Errorf("model %d not found", modelID)
	}

	existing := make(map[string]bool, len(model.Fields))
	for _, f := range model.Fields {
		existing[f.Name] = true
	}

	added := 0
	for _, name := range names {
		if existing[name] {
			continue
		}
		model.Fields = append(model.Fields, Field{
			Name: name,
			Ord:  len(model.Fields),
			Font: "Arial",
			Size: 20,
		})
		existing[name] = true
		added++
	}

	return added, nil
}

// padNotes grows every note of a model to the model's field count so the
// saved deck never holds notes shorter than their note type.
func (p *Package) padNotes(modelID int64) {
	model, ok := p.Models[modelID]
	if !ok {
		return
	}
	now := time.Now().Unix()
	for _, note := range p.Notes {
		if note.ModelID != modelID || len(note.Fields) >= len(model.Fields) {
			continue
		}
		for len(note.Fields) < len(model.Fields) {
			note.Fields = append(note.Fields, "")
		}
		note.Mod = now
		note.USN = -1
		note.dirty = true
	}
}

// SetField sets a named field on a note, growing the note to match its
// model when fields were added.
func (p *Package) SetField(note *Note, name, value string) error {
	model := p.GetModel(note)
	if model == nil {
		return fmt.Errorf("model not found for note %d", note.ID)
	}

	for len(note.Fields) < len(model.Fields) {
		note.Fields = append(note.Fields, "")
	}

	for _, f := range model.Fields {
		if f.Name == name {
			note.Fields[f.Ord] = value
			note.Mod = time.Now().Unix()
			note.USN = -1
			note.dirty = true
			return nil
		}
	}

	return fmt.Errorf("note %d has no field %q", note.ID, name)
}

// SaveAs writes the modified package to a new .apkg file.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.updateDatabase(); err != nil {
		return fmt.Errorf("updating database: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	zipWriter := zip.NewWriter(outFile)

	err = filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}

		writer, err := zipWriter.Create(filepath.ToSlash(relPath))
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		zipWriter.Close()
		outFile.Close()
		return fmt.Errorf("creating zip: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		outFile.Close()
		return fmt.Errorf("finishing zip: %w", err)
	}
	return outFile.Close()
}

// updateDatabase writes model and note changes back to the SQLite database.
func (p *Package) updateDatabase() error {
	if err := p.updateModels(); err != nil {
		return err
	}
	return p.updateNotes()
}

// updateModels rewrites the models JSON in the col table. Only "flds" is
// replaced; templates and every other key round-trip untouched.
func (p *Package) updateModels() error {
	modelsMap := make(map[string]map[string]json.RawMessage, len(p.Models))
	for id, model := range p.Models {
		raw := make(map[string]json.RawMessage, len(model.raw)+1)
		for k, v := range model.raw {
			raw[k] = v
		}

		flds, err := json.Marshal(model.Fields)
		if err != nil {
			return fmt.Errorf("marshaling fields of model %d: %w", id, err)
		}
		raw["flds"] = flds

		modelsMap[strconv.FormatInt(id, 10)] = raw
	}

	modelsJSON, err := json.Marshal(modelsMap)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}

	if _, err := p.db.Exec("UPDATE col SET models = ?", string(modelsJSON)); err != nil {
		return fmt.Errorf("updating models: %w", err)
	}

	return nil
}

// updateNotes writes back notes touched by SetField. The sort field is
// never one of the added fields, so sfld and csum stay valid.
func (p *Package) updateNotes() error {
	for _, note := range p.Notes {
		if !note.dirty {
			continue
		}

		_, err := p.db.Exec(`
			UPDATE notes SET
				mod = ?,
				usn = ?,
				flds = ?
			WHERE id = ?
		`, note.Mod, note.USN, strings.Join(note.Fields, fieldSeparator), note.ID)
		if err != nil {
			return fmt.Errorf("updating note %d: %w", note.ID, err)
		}
		note.dirty = false
	}

	return nil
}
