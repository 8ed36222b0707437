package errorx

import "fmt"

type Error struct {
	Code    uint64
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// New creates an Error whose message is shown to the client verbatim. Put
// internal details in the log, not in the message.
func New(code Code, format string, a ...any) Error {
	return Error{Code: uint64(code), Message: fmt.Sprintf(format, a...)}
}
