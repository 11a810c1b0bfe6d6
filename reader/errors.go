package reader

import "fmt"

// ErrIOFailure reports that the script file named by Path could not be
// opened or read.
type ErrIOFailure struct {
	Path  string
	Cause error
}

func (e *ErrIOFailure) Error() string {
	return fmt.Sprintf("read script file %q: %v", e.Path, e.Cause)
}

func (e *ErrIOFailure) Unwrap() error { return e.Cause }
