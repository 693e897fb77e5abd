package loader

import "errors"

var (
	ErrFormat       = errors.New("malformed executable")
	ErrArchMismatch = errors.New("architecture mismatch")
)
