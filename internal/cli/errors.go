package cli

import (
	"errors"
	"fmt"
)

// usageError is a mistake in how a command was invoked (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error from Execute to a process exit code:
// 0 ok, 1 failure, 2 usage.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}
