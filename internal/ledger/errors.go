package ledger

import "errors"

var (
	// Selection errors.
	ErrNoSelection   = errors.New("no entry selected")
	ErrEntryNotFound = errors.New("entry not found")

	// Category errors.
	ErrUnknownCategory     = errors.New("unknown category")
	ErrDuplicateCategory   = errors.New("category already exists")
	ErrInvalidCategoryName = errors.New("category name cannot be empty")
	ErrLastCategory        = errors.New("cannot remove the last category")
	ErrInvalidRate         = errors.New("rate must be a non-negative number")
)
