package mapping

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader         = errors.New("malformed class header")
	ErrUnrecognizedLineVariant = errors.New("unrecognized line variant")
	ErrArgWithoutMethod        = errors.New("ARG without a preceding METHOD")
	// ErrCommentOnField guards an invariant the parser already enforces:
	// argument comments only follow ARG lines, and ARG only follows a METHOD.
	ErrCommentOnField          = errors.New("argument comment on a field")
	ErrAmbiguousArgumentCount  = errors.New("argument names do not match parameter count")
	ErrMalformedArgument       = errors.New("malformed ARG line")
)

// ParseError locates a failure inside a mapping unit. Unit is the unit's
// obfuscated path when the header was readable, Line is 1-based.
type ParseError struct {
	Unit string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Unit, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
