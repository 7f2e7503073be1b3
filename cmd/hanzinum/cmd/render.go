package cmd

import (
	"fmt"

	"github.com/f3rmion/hanzinum/internal/batch"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:     "render <number>...",
	Aliases: []string{"r"},
	Short:   "Render numbers as Chinese numerals",
	Long: `Render each argument and print one numeral per line.

Full-width digits (１２３．４５) are accepted. Put negative numbers after
"--" so they aren't read as flags.

Examples:
  hanzinum render 2014
  hanzinum render -c 1234.56
  hanzinum render --script simplified 20000
  hanzinum render -- -0.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addRenderFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	conv := batch.NewConverter(opts, true, logger)
	out := cmd.OutOrStdout()
	for _, arg := range args {
		s, err := conv.One(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	}

	return nil
}
