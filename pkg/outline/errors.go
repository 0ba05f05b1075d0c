package outline

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTree is wrapped by every ContractError.
	ErrMalformedTree = errors.New("malformed document tree")

	// ErrUnsupportedSetext is returned under SetextReject for setext headings
	// whose level is not 2.
	ErrUnsupportedSetext = errors.New("unsupported setext heading level")
)

// ContractError reports a document tree that breaks the node invariants,
// such as a code block without exactly one content child.
type ContractError struct {
	// Node names the offending node kind, e.g. "CodeBlock".
	Node string

	// Reason describes the broken invariant.
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrMalformedTree, e.Node, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrMalformedTree
}

func contractErrorf(node, format string, args ...any) error {
	return &ContractError{Node: node, Reason: fmt.Sprintf(format, args...)}
}
