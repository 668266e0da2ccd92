package bot

import "fmt"

// Error classes per the reply policy: usage, validation and not-found
// problems echo their own message back to the chat; anything else collapses
// to the generic internal notice.

// userFacing marks errors whose text is safe to send to the chat.
type userFacing interface {
	error
	userFacing()
}

type usageError struct{ format string }

func (e *usageError) Error() string { return "⚠ Format: " + e.format }
func (e *usageError) userFacing()   {}

func usageErr(format string) error {
	return &usageError{format: format}
}

type validationError struct{ msg string }

func (e *validationError) Error() string { return "⚠ " + e.msg }
func (e *validationError) userFacing()   {}

func validationErr(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return "⚠ " + e.msg }
func (e *notFoundError) userFacing()   {}

func notFoundErr(format string, args ...interface{}) error {
	return &notFoundError{msg: fmt.Sprintf(format, args...)}
}
