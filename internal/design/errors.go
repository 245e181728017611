package design

import "errors"

var (
	ErrInvalidDesign     = errors.New("invalid design")
	ErrUnsupportedFormat = errors.New("unsupported design format")
)
