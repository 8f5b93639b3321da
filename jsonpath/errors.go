package jsonpath

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SyntaxError is returned by Parse when the expression violates the
// grammar, including lexical errors (unterminated quotes, stray
// characters). It carries enough context to print a caret under the
// offending position, in the style of the teacher's own parser errors.
type SyntaxError struct {
	Parser string
	Msg    string
	Input  string
	Pos    int
}

func (e SyntaxError) Error() string {
	// +1 for the opening quote that %q prints before the input.
	posMarker := strings.Repeat(" ", e.Pos+1) + "^"
	return fmt.Sprintf("%s: syntax error (at pos %d): %s\n%q\n%s", e.Parser, e.Pos, e.Msg, e.Input, posMarker)
}

// ExecutionError is returned by evaluation for conditions that are
// programmer errors rather than ordinary structural mismatches (which
// instead produce empty results, per spec.md §7's "evaluation is total"
// philosophy).
type ExecutionError struct {
	Op  string
	Msg string
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("%s: execution error: %s", e.Op, e.Msg)
}

// ErrNotImplemented is returned by Find (and so by Update, Include and
// Exclude) when the expression contains an Intersect node: the node is reserved by
// spec.md §4.D/§9 and deliberately left without invented semantics.
var ErrNotImplemented = errors.New("jsonpath: Intersect is reserved and not implemented")

func wrapExec(op, format string, args ...any) error {
	return errors.WithStack(ExecutionError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
