package main

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "render VALUES...",
		Short: "Insert values into an empty tree and print it.",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().StringVar(&format, "format", "ascii", "Output format: ascii, dot, json or pretty.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log, err := opts.logger()
		if err != nil {
			return err
		}
		values, err := parseValues(args)
		if err != nil {
			return err
		}
		tree, dups := buildTree(values, log)
		for _, d := range dups {
			log.Warn("skipped duplicate", "value", d)
		}

		snap := tree.Snapshot()
		out := cmd.OutOrStdout()
		switch format {
		case "ascii":
			fmt.Fprintln(out, snap.String())
			fmt.Fprintf(out, "%s nodes, height %d\n", humanize.Comma(int64(snap.Size)), snap.Height)
		case "dot":
			fmt.Fprint(out, snap.Dot())
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		case "pretty":
			fmt.Fprintf(out, "%# v\n", pretty.Formatter(snap))
		default:
			return errors.Newf("unknown format %q", format)
		}
		return nil
	}
	return cmd
}
