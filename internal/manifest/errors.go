package manifest

import (
	"errors"
	"fmt"
)

// ErrNotProjectRoot is returned when the candidate root has no Cargo.toml.
// It is not a failure: callers treat the root as inactive.
var ErrNotProjectRoot = errors.New("not a cargo project root")

// ParseError reports a manifest or config file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
