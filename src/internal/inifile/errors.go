package inifile

import (
	"errors"
	"fmt"
)

// ErrIniNotFound is returned when the target php.ini does not exist.
var ErrIniNotFound = errors.New("php.ini file not found")

// PermissionError reports an unreadable or unwritable ini file together
// with a remediation hint. Callers may retry the operation through an
// elevated FileAccess.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s (re-run with elevated privileges or fix the file's ownership): %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}
