package bstviz

// Op names a public tree operation as reported to an Observer.
type Op string

const (
	OpInsert Op = "insert"
	OpSearch Op = "search"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
)

// Observer is notified after every public operation. It sees outcomes only
// and cannot influence the algorithm.
type Observer interface {
	// ObserveOp reports an operation, whether it succeeded and how many steps
	// it logged.
	ObserveOp(op Op, ok bool, steps int)
	// ObserveShape reports the tree's size and height after the operation.
	ObserveShape(size, height int)
}

type nopObserver struct{}

func (nopObserver) ObserveOp(Op, bool, int) {}
func (nopObserver) ObserveShape(int, int)   {}

// Options configures a Tree.
type Options struct {
	logger   Logger
	observer Observer
}

func defaultOptions() Options {
	return Options{
		logger:   DiscardLogger{},
		observer: nopObserver{},
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger mutations and invariant failures are reported to.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		if l != nil {
			opts.logger = l
		}
	}
}

// WithObserver registers an observer for operation outcomes and tree shape.
func WithObserver(o Observer) Option {
	return func(opts *Options) {
		if o != nil {
			opts.observer = o
		}
	}
}
