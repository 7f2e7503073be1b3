// Package anki reads Anki .apkg decks and writes them back with rendered
// numeral fields.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// fieldSeparator splits the flds column of the notes table.
const fieldSeparator = "\x1f"

// Package represents an opened Anki .apkg file.
type Package struct {
	path      string
	tempDir   string
	db        *sql.DB
	Models    map[int64]*Model
	Decks     map[int64]*Deck
	Notes     []*Note
	CardCount int
}

// Model represents an Anki note type. Keys this package doesn't know about
// (templates, CSS, sort field …) are kept verbatim in raw.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`

	raw map[string]json.RawMessage
}

// Field represents a field in a note type.
type Field struct {
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
	Sticky bool   `json:"sticky"`
	RTL    bool   `json:"rtl"`
	Font   string `json:"font"`
	Size   int    `json:"size"`
}

// Deck represents an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Note represents an Anki note.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Mod     int64
	USN     int
	Tags    string
	Fields  []string
	SFLD    string

	dirty bool
}

// OpenPackage extracts an .apkg file and loads its collection.
func OpenPackage(path string) (*Package, error) {
	pkg := &Package{
		path:   path,
		Models: make(map[int64]*Model),
		Decks:  make(map[int64]*Deck),
	}

	tempDir, err := os.MkdirTemp("", "hanzinum-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg.tempDir = tempDir

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	// Newer exports carry a real collection.anki21 next to a stub
	// collection.anki2.
	dbPath := filepath.Join(tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki2")
	}
	if _, err := os.Stat(dbPath); err != nil {
		pkg.Close()
		return nil, fmt.Errorf("no collection in %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	pkg.db = db

	for _, load := range []func() error{pkg.loadCollection, pkg.loadNotes, pkg.countCards} {
		if err := load(); err != nil {
			pkg.Close()
			return nil, err
		}
	}

	return pkg, nil
}

// extract unzips the .apkg file into the temp dir.
func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(p.tempDir, f.Name)

		// Prevent zip slip
		if !strings.HasPrefix(fpath, filepath.Clean(p.tempDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := extractFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

func extractFile(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(out, rc)
	return err
}

// loadCollection loads models and decks from the col table.
func (p *Package) loadCollection() error {
	var models, decks string

	row := p.db.QueryRow("SELECT models, decks FROM col")
	if err := row.Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}

	for _, modelJSON := range modelsMap {
		model, err := parseModel(modelJSON)
		if err != nil {
			continue // Skip malformed models
		}
		p.Models[model.ID] = model
	}

	var decksMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(decks), &decksMap); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}

	for _, deckJSON := range decksMap {
		var deck Deck
		if err := json.Unmarshal(deckJSON, &deck); err != nil {
			continue // Skip malformed decks
		}
		p.Decks[deck.ID] = &deck
	}

	return nil
}

func parseModel(data json.RawMessage) (*Model, error) {
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &model.raw); err != nil {
		return nil, err
	}
	return &model, nil
}

// loadNotes loads all notes from the database.
func (p *Package) loadNotes() error {
	rows, err := p.db.Query(`
		SELECT id, guid, mid, mod, usn, tags, flds, sfld
		FROM notes
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			note Note
			flds string
		)
		if err := rows.Scan(
			&note.ID, &note.GUID, &note.ModelID, &note.Mod, &note.USN,
			&note.Tags, &flds, &note.SFLD,
		); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}

		note.Fields = strings.Split(flds, fieldSeparator)
		p.Notes = append(p.Notes, &note)
	}

	return rows.Err()
}

func (p *Package) countCards() error {
	if err := p.db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&p.CardCount); err != nil {
		return fmt.Errorf("counting cards: %w", err)
	}
	return nil
}

// GetModel returns the model for a note.
func (p *Package) GetModel(note *Note) *Model {
	return p.Models[note.ModelID]
}

// GetNoteByID finds a note by ID.
func (p *Package) GetNoteByID(id int64) *Note {
	for _, note := range p.Notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

// GetFieldValue returns a field value from a note by field name.
func (p *Package) GetFieldValue(note *Note, fieldName string) string {
	model := p.GetModel(note)
	if model == nil {
		return ""
	}

	for _, field := range model.Fields {
		if strings.EqualFold(field.Name, fieldName) && field.Ord < len(note.Fields) {
			return note.Fields[field.Ord]
		}
	}

	return ""
}

// GetFieldNames returns all field names for a note's model.
func (p *Package) GetFieldNames(note *Note) []string {
	model := p.GetModel(note)
	if model == nil {
		return nil
	}

	names := make([]string, len(model.Fields))
	for i, field := range model.Fields {
		names[i] = field.Name
	}
	return names
}

// Close cleans up resources.
func (p *Package) Close() error {
	var err error
	if p.db != nil {
		err = p.db.Close()
		p.db = nil
	}
	if p.tempDir != "" {
		if rmErr := os.RemoveAll(p.tempDir); err == nil {
			err = rmErr
		}
		p.tempDir = ""
	}
	return err
}

// Summary returns a summary of the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Anki Package: %s\n", p.path)
	fmt.Fprintf(&sb, "  Decks: %d\n", len(p.Decks))
	for _, deck := range p.Decks {
		fmt.Fprintf(&sb, "    - %s\n", deck.Name)
	}
	fmt.Fprintf(&sb, "  Models (Note Types): %d\n", len(p.Models))
	for _, model := range p.Models {
		fmt.Fprintf(&sb, "    - %s (%d fields)\n", model.Name, len(model.Fields))
	}
	fmt.Fprintf(&sb, "  Notes: %d\n", len(p.Notes))
	fmt.Fprintf(&sb, "  Cards: %d\n", p.CardCount)

	return sb.String()
}
