package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"bstviz"
)

// opArgs are the flags and arguments shared by steps and play.
type opArgs struct {
	tree []int
}

func (a *opArgs) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&a.tree, "tree", nil, "Values inserted before the operation runs.")
}

// run builds the starting tree and applies OP VALUE to it.
func (a *opArgs) run(opts *rootOptions, args []string) (*bstviz.Tree, bool, error) {
	log, err := opts.logger()
	if err != nil {
		return nil, false, err
	}
	values, err := parseValues(args[1:])
	if err != nil {
		return nil, false, err
	}
	if len(values) != 1 {
		return nil, false, errors.Newf("want exactly one value, got %q", args[1])
	}
	tree, _ := buildTree(a.tree, log)
	ok, err := runOp(tree, args[0], values[0])
	if err != nil {
		return nil, false, err
	}
	return tree, ok, nil
}

func newStepsCmd(opts *rootOptions) *cobra.Command {
	var (
		a      opArgs
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "steps OP VALUE",
		Short: "Print the step log of insert, search or delete.",
		Args:  cobra.ExactArgs(2),
	}
	a.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the steps as JSON.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		tree, ok, err := a.run(opts, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		steps := tree.LastSteps()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(steps)
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "Action", "Event", "Size", "Height"})
		table.SetAutoWrapText(false)
		for i, s := range steps {
			table.Append([]string{
				strconv.Itoa(i + 1),
				string(s.Action()),
				s.Event.String(),
				strconv.Itoa(s.Tree.Size),
				strconv.Itoa(s.Tree.Height),
			})
		}
		table.Render()
		fmt.Fprintf(out, "%s %s: %t\n", args[0], args[1], ok)
		return nil
	}
	return cmd
}
