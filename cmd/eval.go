package cmd

import (
	"strings"

	"github.com/jparise/broken-time/internal/calc"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate a duration expression",
		Long: `Evaluate a single operand, a negation, or one binary operation.

Operators:
  + -            add or subtract two durations
  *              scale a duration by a number
  /              divide by a duration (number) or by a number (duration)
  //             floor-divide by a duration (integer) or a number (duration)
  %              remainder after floor division by a duration
  == != < <= > >= compare two durations

Quote the expression so the shell does not expand "*", and use "--"
before an operand that starts with "-".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, out, err := setup(cmd)
			if err != nil {
				return err
			}

			result, err := calc.Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}

			return out.Value(result)
		},
	}
}
