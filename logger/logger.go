// Package logger adapts popular logging libraries to bstviz.Logger.
//
// A *slog.Logger already satisfies bstviz.Logger and needs no adapter.
//
// Example with zap:
//
//	zl, _ := zap.NewProduction()
//	tree := bstviz.New(bstviz.WithLogger(logger.NewZap(zl)))
package logger

// fields turns alternating key/value args into a map. A trailing key without
// a value and non-string keys are dropped.
func fields(args []any) map[string]any {
	out := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			out[key] = args[i+1]
		}
	}
	return out
}
