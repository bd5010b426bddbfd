package cli

import "fmt"

// ExitError carries a non-zero exit code that is not a failure, such as
// "manual action required".
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
