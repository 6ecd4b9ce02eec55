package model

import "errors"

var (
	// ErrInvalidBookmark indicates a bookmark is missing a required field.
	ErrInvalidBookmark = errors.New("invalid bookmark")

	// ErrInvalidColumn indicates a column outside the editable or sortable set.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrNoChanges indicates an update that names no fields.
	ErrNoChanges = errors.New("no fields to update")
)
