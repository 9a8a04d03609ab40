package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAmbiguousName    = errors.New("multiple employees share this name")
)
