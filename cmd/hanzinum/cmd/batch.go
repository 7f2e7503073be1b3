package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/f3rmion/hanzinum/internal/batch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Render a file of numbers, one per line",
	Long: `Read numbers one per line from a file, or from stdin when the file is
omitted or "-", and write the renderings.

Blank lines and lines starting with '#' are skipped. Lines that don't
render are reported with their error unless --fail-fast is set.

Examples:
  hanzinum batch amounts.txt -c
  cat amounts.txt | hanzinum batch --format csv -o amounts.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutput   string
	batchFailFast bool
)

func init() {
	rootCmd.AddCommand(batchCmd)
	addRenderFlags(batchCmd)
	batchCmd.Flags().StringP("format", "f", "", "output format: text, json, csv, yaml (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output file (stdout if not specified)")
	batchCmd.Flags().BoolVar(&batchFailFast, "fail-fast", false, "stop at the first line that doesn't render")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	format, err := batch.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	results, err := batch.NewConverter(opts, batchFailFast, logger).Convert(in)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		return batch.Write(w, format, results)
	}
	if batchOutput == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		if err := writeAndClose(f, write); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	logger.Info("batch done", zap.Int("lines", len(results)), zap.Int("failed", failed))

	return nil
}

// writeAndClose runs write against wc and closes it. A failed close is
// reported, since buffered data may not have reached the file.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
