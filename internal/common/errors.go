package common

import "errors"

var (
	// ErrorNotFound is returned by repositories for missing rows or keys.
	ErrorNotFound = errors.New("not found")
)
