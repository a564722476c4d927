package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bstviz/internal/player"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var a opArgs
	cmd := &cobra.Command{
		Use:   "play OP VALUE",
		Short: "Step through an operation interactively.",
		Args:  cobra.ExactArgs(2),
	}
	a.register(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tree, _, err := a.run(opts, args)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s %s", args[0], args[1])
		m := player.New(title, tree.LastSteps(), tree.Snapshot())
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout())).Run()
		return err
	}
	return cmd
}
