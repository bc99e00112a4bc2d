package vm

import "fmt"

// RuntimeError is a failure raised while executing bytecode, reported to
// the caller's stderr writer as two lines: the message, then
// "[line L] in script".
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script\n", e.Message, e.Line)
}

func newRuntimeError(line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}
