package cmd

import (
	"fmt"
	"slices"

	"github.com/jparise/broken-time/brokentime"
	"github.com/spf13/cobra"
)

func newRangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range [<start>] <end> [<step>]",
		Short: "List durations from start to end",
		Long: `List every duration from <start> (default 00:00:00) up to and
including <end>, advancing by <step>.

The step defaults to 01:00:00 or the configured step. --by accepts either
H:MM:SS or a number with a unit suffix (s, m, h, d, w) and overrides a
positional <step>.

Examples:
  broken-time range 03:00:00
  broken-time range 22:00:00 26:00:00
  broken-time range 00:00:00 00:00:02 00:00:01
  broken-time range --by 90m 00:00:00 06:00:00`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, out, err := setup(cmd)
			if err != nil {
				return err
			}

			bounds := make([]any, len(args))
			for i, arg := range args {
				bounds[i] = arg
			}

			r, err := brokentime.NewRange(bounds...)
			if err != nil {
				return err
			}
			if len(args) < 3 || cmd.Flags().Changed("by") {
				r = r.By(cfg.Step)
			}

			if err := checkStep(r); err != nil {
				return err
			}

			return out.Durations(slices.Collect(r.All()))
		},
	}

	cmd.Flags().String("by", "", "step between values (e.g., 00:15:00, 15m, 2h)")

	return cmd
}

func newSinceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "since <start>",
		Short: "List durations counting up from start",
		Long: `List durations counting up from <start> without an upper bound.

The sequence is cut off after --limit values (default 24).

Examples:
  broken-time since 22:00:00
  broken-time since 00:00:00 --by 1d --limit 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, out, err := setup(cmd)
			if err != nil {
				return err
			}

			start, err := brokentime.Parse(args[0])
			if err != nil {
				return err
			}

			r := start.Since().By(cfg.Step)
			if err := checkStep(r); err != nil {
				return err
			}

			values := make([]brokentime.Duration, 0, cfg.Limit)
			for d := range r.All() {
				values = append(values, d)
				if len(values) == cfg.Limit {
					break
				}
			}

			return out.Durations(values)
		},
	}

	cmd.Flags().String("by", "", "step between values (e.g., 00:15:00, 15m, 2h)")
	cmd.Flags().Int("limit", 24, "maximum number of values to print")

	return cmd
}

// checkStep rejects steps that would never pass the end of a range.
func checkStep(r brokentime.Range) error {
	if r.Step().Sign() <= 0 {
		return fmt.Errorf("step must be positive, got %s", r.Step())
	}
	return nil
}
