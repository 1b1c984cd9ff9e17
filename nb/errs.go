package nb

import "errors"

var (
	// ErrParse reports content that is not a structurally valid notebook.
	ErrParse = errors.New("notebook parse error")

	// ErrInvalidNotebook reports a notebook value that violates the
	// schema invariants, such as outputs on a non-code cell.
	ErrInvalidNotebook = errors.New("invalid notebook")

	// ErrExists reports a refusal to overwrite an existing file.
	ErrExists = errors.New("file exists")
)
