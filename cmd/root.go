package cmd

import (
	"github.com/jparise/broken-time/internal/config"
	"github.com/jparise/broken-time/internal/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// appFs is where config files are read from.
	appFs = afero.NewOsFs()
)

func newRootCmd() *cobra.Command {
	var (
		// Flags.
		color      = config.ColorAuto
		format     = output.FormatText
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "broken-time",
		Short: "Calculate with clock durations that run past 24 hours",
		Long: `broken-time works with H:MM:SS durations whose hour field is not
bounded by 24 and whose value may be negative.

Durations are written as three colon-separated groups of digits. Minutes
and seconds may exceed 59 on input and are folded into the larger fields:
"1:90:00" is 02:30:00.

Settings may also be given as BROKENTIME_COLOR, BROKENTIME_OUTPUT,
BROKENTIME_LIMIT and BROKENTIME_STEP, or in a YAML config file
(default: ` + config.DefaultPath() + `).

Examples:
  broken-time eval "23:30:00 + 01:45:00"
  broken-time eval "01:01:01 * 1.5"
  broken-time range 22:00:00 26:00:00
  broken-time range --by 15m 00:00:00 01:00:00
  broken-time since 23:00:00 --limit 4 --output json
  broken-time shell`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().VarP(&format, "output", "o",
		"output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"read settings from this YAML file")

	rootCmd.AddCommand(newEvalCmd(), newRangeCmd(), newSinceCmd(), newShellCmd())

	return rootCmd
}

func Execute() error {
	return newRootCmd().Execute()
}

// setup resolves the configuration for cmd and returns an Output writing
// to the command's streams.
func setup(cmd *cobra.Command) (config.Config, *output.Output, error) {
	cfg, err := config.Load(appFs, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	out := output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Colorize(), cfg.Output)
	return cfg, out, nil
}
