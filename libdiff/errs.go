package libdiff

import "errors"

// ErrTypeMismatch reports an attempt to diff two records of different
// declared types. Diffing across schemas is never coerced.
var ErrTypeMismatch = errors.New("type mismatch")
