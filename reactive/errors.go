package reactive

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyChain is returned when a chain has no links.
	ErrEmptyChain = errors.New("chain has no links")
	// ErrChainNotGenerated is returned by the marker functions when no
	// path was registered for the expression.
	ErrChainNotGenerated = errors.New("chain was not generated")
	// ErrReadOnly is returned when binding to a path whose leaf cannot be
	// written.
	ErrReadOnly = errors.New("leaf property is read-only")
)

// NotGenerated returns an ErrChainNotGenerated error for expr.
func NotGenerated(expr string) error {
	return fmt.Errorf("%w: %q", ErrChainNotGenerated, expr)
}

// LinkError reports an unusable link in a hand-written chain.
type LinkError struct {
	Name   string
	Reason string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %q: %s", e.Name, e.Reason)
}

// BindError reports a path that cannot take part in a binding.
type BindError struct {
	Path string
	Err  error
}

func (e *BindError) Error() string {
	return "bind " + e.Path + ": " + e.Err.Error()
}

func (e *BindError) Unwrap() error {
	return e.Err
}
