package storage

import (
	"context"

	"github.com/bunchhieng/bark/internal/model"
)

// Storage defines the interface for bookmark persistence.
type Storage interface {
	// Init ensures the backing schema exists. Safe to call on every start.
	Init(ctx context.Context) error

	// Create stores a new bookmark and returns it with its assigned ID.
	Create(ctx context.Context, b *model.Bookmark) (*model.Bookmark, error)

	// List returns all bookmarks ordered ascending by orderBy.
	List(ctx context.Context, orderBy model.Column) ([]*model.Bookmark, error)

	// Edit changes only the named fields of the bookmark with the given ID.
	// A missing ID is not an error.
	Edit(ctx context.Context, id int64, changes map[model.Column]string) error

	// Delete removes a bookmark by ID. A missing ID is not an error.
	Delete(ctx context.Context, id int64) error

	// Close closes the storage connection.
	Close() error
}
