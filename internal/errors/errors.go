// Package errors formats command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/julianstephens/daytrack/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

type notice struct {
	err error
}

func (n *notice) Error() string { return n.err.Error() }
func (n *notice) Unwrap() error { return n.err }

// Notice marks err as a request that was accepted but changed nothing, such
// as toggling an unknown task id.
func Notice(err error) error {
	if err == nil {
		return nil
	}
	return &notice{err: err}
}

// IsNotice reports whether err was wrapped with Notice.
func IsNotice(err error) bool {
	var n *notice
	return stderrors.As(err, &n)
}

// Report logs err and writes it to w, returning the process exit code.
// Notices are reported without the "Error: " prefix.
func Report(w io.Writer, command string, err error) int {
	if err == nil {
		return 0
	}
	if IsNotice(err) {
		logger.Info("Command changed nothing", "command", command, "reason", err)
		fmt.Fprintf(w, "Nothing changed: %v\n", err)
		return 1
	}
	logger.Error("Command execution failed", "command", command, "error", err)
	fmt.Fprintln(w, Format(err))
	return 1
}
