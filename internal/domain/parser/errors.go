package parser

import "errors"

// ErrUnsupportedFormat is returned for input that is not plain text.
var ErrUnsupportedFormat = errors.New("unsupported resume format")
