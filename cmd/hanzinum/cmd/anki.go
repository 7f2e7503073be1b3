package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/f3rmion/hanzinum/internal/anki"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for reading Anki .apkg files and adding Chinese numeral fields to them.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types (models) and their fields
  - Sample notes

Example:
  hanzinum anki inspect numbers.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiAugmentCmd = &cobra.Command{
	Use:   "augment <file.apkg>",
	Short: "Add Chinese numeral fields to an Anki deck",
	Long: `Read an Anki deck, render the number held in each note and write a
new deck with two extra fields:
  - Numeral_Standard   e.g. 兩千零一十四
  - Numeral_Capital    e.g. 貳仟零壹拾肆元整

The field holding the number is auto-detected unless --field is given.
The new deck is written next to the input as <name>_numeral.apkg.

Examples:
  hanzinum anki augment numbers.apkg
  hanzinum anki augment numbers.apkg --field Price --script simplified
  hanzinum anki augment numbers.apkg --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiAugment,
}

var (
	ankiInspectLimit  int
	ankiAugmentField  string
	ankiAugmentOutput string
	ankiAugmentDryRun bool
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiAugmentCmd)

	ankiInspectCmd.Flags().IntVarP(&ankiInspectLimit, "limit", "n", 5, "Number of sample notes to show")

	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentField, "field", "f", "", "Field name holding the number (auto-detect if not specified)")
	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentOutput, "output", "o", "", "Output .apkg (default <name>_numeral.apkg)")
	ankiAugmentCmd.Flags().BoolVar(&ankiAugmentDryRun, "dry-run", false, "Print the renderings as JSON instead of writing a deck")
	ankiAugmentCmd.Flags().String("script", "", "traditional or simplified (default from config)")
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Fprint(out, pkg.Summary())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Field Details:")
	for _, model := range pkg.Models {
		fmt.Fprintf(out, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(out, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	if field := anki.DetectNumberField(pkg); field != "" {
		fmt.Fprintf(out, "\nNumber field: %s\n", field)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Sample Notes (first %d):\n", ankiInspectLimit)
	for i, note := range pkg.Notes {
		if i >= ankiInspectLimit {
			break
		}

		modelName := "unknown"
		if model := pkg.GetModel(note); model != nil {
			modelName = model.Name
		}

		fmt.Fprintf(out, "\n  Note %d (Model: %s):\n", note.ID, modelName)
		fieldNames := pkg.GetFieldNames(note)
		for j, value := range note.Fields {
			fieldName := fmt.Sprintf("Field %d", j)
			if j < len(fieldNames) {
				fieldName = fieldNames[j]
			}
			value = anki.StripHTML(value)
			if r := []rune(value); len(r) > 100 {
				value = string(r[:100]) + "..."
			}
			fmt.Fprintf(out, "    %s: %s\n", fieldName, value)
		}
	}

	return nil
}

func runAnkiAugment(cmd *cobra.Command, args []string) error {
	path := args[0]
	stderr := cmd.ErrOrStderr()

	opts, err := renderOptions()
	if err != nil {
		return err
	}

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	logger.Info("opened deck", zap.String("path", path), zap.Int("notes", len(pkg.Notes)))

	field := ankiAugmentField
	if field == "" {
		field = anki.DetectNumberField(pkg)
		if field == "" {
			return fmt.Errorf("could not auto-detect a field holding numbers. Use --field to specify")
		}
		fmt.Fprintf(stderr, "Auto-detected number field: %s\n", field)
	}

	results := anki.NewAugmenter(opts.Script, logger).Augment(pkg, field)
	if len(results) == 0 {
		return fmt.Errorf("no note has a number in field %q", field)
	}

	if ankiAugmentDryRun {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	outputPath := ankiAugmentOutput
	if outputPath == "" {
		ext := filepath.Ext(path)
		outputPath = strings.TrimSuffix(path, ext) + "_numeral" + ext
	}

	updated, err := pkg.Apply(results)
	if err != nil {
		return err
	}
	if err := pkg.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving augmented package: %w", err)
	}

	fmt.Fprintf(stderr, "Rendered %d of %d notes\n", updated, len(pkg.Notes))
	fmt.Fprintf(stderr, "Wrote augmented deck to: %s\n", outputPath)
	fmt.Fprintf(stderr, "\nNew fields added to notes:\n")
	for _, f := range anki.NumeralFields {
		fmt.Fprintf(stderr, "  - %s\n", f)
	}

	return nil
}
