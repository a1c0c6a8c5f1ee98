package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive shell: run subcommands without the pmapp prefix",
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	rl, err := readline.New("pmapp> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("Type a subcommand ('projects list', 'tasks next 3', ...), 'help', or 'exit'.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "exit", "quit":
			return nil
		case "shell":
			fmt.Println("already in a shell")
			continue
		}

		dispatch(cmd.Context(), fields)
	}
}

// dispatch runs one shell line through the root command, then restores every
// flag in the tree to its default. Cobra keeps parsed flag values across
// Execute calls, so without the reset a flag given on one line would still
// apply to every later line.
func dispatch(ctx context.Context, fields []string) {
	rootCmd.SetArgs(fields)
	err := rootCmd.ExecuteContext(ctx)
	resetFlags(rootCmd)
	if err != nil {
		fmt.Println("Error:", err)
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().Visit(reset)
	cmd.PersistentFlags().Visit(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
