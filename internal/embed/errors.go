package embed

import "errors"

// ErrParse indicates a marker URL without a hostname. It aborts the whole pass.
var ErrParse = errors.New("embed URL has no hostname")
