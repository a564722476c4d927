package bstviz

import "errors"

var (
	ErrUnknownOrder = errors.New("unknown traversal order")
	ErrCorruption   = errors.New("tree corruption detected")
)
