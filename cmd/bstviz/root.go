package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bstviz"
	"bstviz/logger"
)

type rootOptions struct {
	logFormat string
	logLevel  string
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "bstviz",
		Short:         "Binary search tree with step-by-step operation logs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format: json (zap), text (logrus) or console (zerolog).")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Minimum log level.")

	cmd.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newStepsCmd(opts),
		newPlayCmd(opts),
	)
	return cmd
}

// logger builds the Logger selected by --log-format. Logs go to stderr so
// they never mix with command output.
func (o *rootOptions) logger() (bstviz.Logger, error) {
	switch o.logFormat {
	case "json":
		lvl, err := zapcore.ParseLevel(o.logLevel)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing log level %q", o.logLevel)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		zl, err := cfg.Build()
		if err != nil {
			return nil, errors.Wrap(err, "building zap logger")
		}
		return logger.NewZap(zl), nil

	case "text":
		lvl, err := logrus.ParseLevel(o.logLevel)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing log level %q", o.logLevel)
		}
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetLevel(lvl)
		return logger.NewLogrus(l), nil

	case "console":
		lvl, err := zerolog.ParseLevel(o.logLevel)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing log level %q", o.logLevel)
		}
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
		return logger.NewZerolog(zl), nil
	}
	return nil, errors.Newf("unknown log format %q", o.logFormat)
}

// parseValues parses integer arguments, accepting comma separated lists too.
func parseValues(args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "value %q is not an integer", field)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// buildTree inserts values in order and returns the ones rejected as
// duplicates.
func buildTree(values []int, log bstviz.Logger) (*bstviz.Tree, []int) {
	tree := bstviz.New(bstviz.WithLogger(log))
	var dups []int
	for _, v := range values {
		if !tree.Insert(v) {
			dups = append(dups, v)
		}
	}
	return tree, dups
}

// runOp applies a named operation to the tree.
func runOp(tree *bstviz.Tree, op string, value int) (bool, error) {
	switch bstviz.Op(strings.ToLower(op)) {
	case bstviz.OpInsert:
		return tree.Insert(value), nil
	case bstviz.OpSearch:
		return tree.Search(value), nil
	case bstviz.OpDelete:
		return tree.Delete(value), nil
	}
	return false, errors.Newf("unknown operation %q, want insert, search or delete", op)
}
