package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jparise/broken-time/internal/calc"
	"github.com/jparise/broken-time/internal/output"
	"github.com/spf13/cobra"
)

const shellHelp = `Enter an expression such as "23:30:00 + 01:45:00" or "26:00:00 % 08:00:00".
Operators: + - * / // % == != < <= > >=
Type "exit" or press Ctrl-D to quit.`

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "bt> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			// Write through readline so output does not clobber the prompt.
			out := output.New(rl.Stdout(), rl.Stderr(), cfg.Colorize(), cfg.Output)
			out.Infof("%s", shellHelp)

			return repl(rl.Readline, out)
		},
	}
}

// repl evaluates lines until EOF or "exit". Evaluation errors are reported
// as warnings and do not end the session.
func repl(readLine func() (string, error), out *output.Output) error {
	for {
		line, err := readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch input := strings.TrimSpace(line); input {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help", "?":
			out.Infof("%s", shellHelp)
		default:
			result, err := calc.Eval(input)
			if err != nil {
				out.Warningf("%v", err)
				continue
			}
			if err := out.Value(result); err != nil {
				return err
			}
		}
	}
}
