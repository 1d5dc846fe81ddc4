package repository

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that finds no row.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict means the estimate version moved between read and
	// write.
	ErrVersionConflict = errors.New("estimate version conflict")

	// ErrInvalidParent means a parent is missing, in another project, or
	// would create a cycle.
	ErrInvalidParent = errors.New("invalid parent")
)
