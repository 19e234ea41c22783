package cec

import "errors"

var (
	ErrInvalidFrame      = errors.New("cec: invalid frame: empty input")
	ErrFieldTypeMismatch = errors.New("cec: field type mismatch")
)
