// Package cmd contains all CLI commands for the hanzinum tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/f3rmion/hanzinum/internal/config"
	"github.com/f3rmion/hanzinum/internal/logging"
	"github.com/f3rmion/hanzinum/internal/numeral"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// skipConfig marks commands that must run even when config.yaml is broken.
const skipConfig = "skip-config"

// Keys shared by the config file, HANZINUM_* variables and flags.
var settingKeys = []string{"script", "currency", "format"}

var (
	cfgDirFlag string
	verbose    bool

	configDir string
	settings  = viper.New()
	logger    = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hanzinum",
	Short: "Render Arabic numerals as Chinese numerals",
	Long: `hanzinum renders decimal numbers as Chinese numerals, either in
standard form (一千二百三十四點五六) or in the capital currency form used on
cheques and receipts (壹仟貳佰叁拾肆元伍角陸分).

Settings come from, highest priority first:
  - command-line flags
  - HANZINUM_SCRIPT, HANZINUM_CURRENCY, HANZINUM_FORMAT
  - config.yaml in the config directory
  - built-in defaults

Running 'hanzinum' without arguments launches the interactive TUI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDirFlag, "config", "", "config directory (default is $HOME/.config/hanzinum)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// addRenderFlags registers the flags shared by every rendering command.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("currency", "c", false, "capital currency form (元/角/分)")
	cmd.Flags().String("script", "", "traditional or simplified (default from config)")
}

// setup builds the logger and layers flags, environment and config file
// into settings.
func setup(cmd *cobra.Command, args []string) error {
	l, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = l

	configDir = cfgDirFlag
	if configDir == "" {
		if configDir, err = config.GetConfigDir(); err != nil {
			return fmt.Errorf("finding config directory: %w", err)
		}
	}

	file, err := config.LoadDir(configDir)
	if err != nil {
		if cmd.Annotations[skipConfig] == "" {
			return err
		}
		logger.Warn("ignoring config file", zap.Error(err))
		file = config.Default()
	}

	v := viper.New()
	v.SetEnvPrefix("HANZINUM")
	v.AutomaticEnv()
	v.SetDefault("script", file.Script)
	v.SetDefault("currency", file.Currency)
	v.SetDefault("format", file.Format)
	for _, key := range settingKeys {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	settings = v

	logger.Debug("settings loaded",
		zap.String("config_dir", configDir),
		zap.String("script", v.GetString("script")),
		zap.Bool("currency", v.GetBool("currency")),
		zap.String("format", v.GetString("format")),
	)

	return nil
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		return logging.NewWriter(w, verbose), nil
	}
	return logging.New(verbose)
}

// currentConfig returns the effective settings as a validated Config.
func currentConfig() (*config.Config, error) {
	cfg := &config.Config{
		Script:   settings.GetString("script"),
		Currency: settings.GetBool("currency"),
		Format:   settings.GetString("format"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func renderOptions() (numeral.Options, error) {
	cfg, err := currentConfig()
	if err != nil {
		return numeral.Options{}, err
	}
	return cfg.Options()
}
