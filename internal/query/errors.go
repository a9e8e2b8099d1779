package query

import "fmt"

// StructuralError is the single error kind Validate raises. It names
// the offending operator or combinator and the path it was found
// under, the way the teacher's engine/validator.ValidationResult
// carries an Error string plus a Position.
type StructuralError struct {
	Op      string // offending combinator or operator, e.g. "$and", "$mod"
	Path    string // dotted path the error was found under, "" at the query root
	Message string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s at %q: %s", e.Op, e.Path, e.Message)
}

func structuralErrorf(op, path, format string, args ...any) *StructuralError {
	return &StructuralError{Op: op, Path: path, Message: fmt.Sprintf(format, args...)}
}
