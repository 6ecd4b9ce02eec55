package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bunchhieng/bark/internal/model"
)

const bookmarksTable = "bookmarks"

var bookmarksColumns = []ColumnDef{
	{Name: "id", Type: "INTEGER PRIMARY KEY AUTOINCREMENT"},
	{Name: "title", Type: "TEXT NOT NULL"},
	{Name: "url", Type: "TEXT NOT NULL"},
	{Name: "notes", Type: "TEXT"},
	{Name: "date_added", Type: "TEXT NOT NULL"},
}

// BookmarkStorage implements Storage on top of a Gateway.
type BookmarkStorage struct {
	gw *Gateway
}

// NewBookmarkStorage wraps an open gateway.
func NewBookmarkStorage(gw *Gateway) *BookmarkStorage {
	return &BookmarkStorage{gw: gw}
}

// NewSQLiteStorage opens dbPath and returns a bookmark storage on it.
func NewSQLiteStorage(dbPath string) (*BookmarkStorage, error) {
	gw, err := NewGateway(dbPath)
	if err != nil {
		return nil, err
	}
	return NewBookmarkStorage(gw), nil
}

type bookmarkRow struct {
	ID        int64          `db:"id"`
	Title     string         `db:"title"`
	URL       string         `db:"url"`
	Notes     sql.NullString `db:"notes"`
	DateAdded string         `db:"date_added"`
}

func (r *bookmarkRow) toBookmark() (*model.Bookmark, error) {
	added, err := model.ParseTime(r.DateAdded)
	if err != nil {
		return nil, fmt.Errorf("bookmark %d: %w", r.ID, err)
	}
	b := &model.Bookmark{
		ID:        r.ID,
		Title:     r.Title,
		URL:       r.URL,
		DateAdded: added,
	}
	if r.Notes.Valid {
		b.Notes = r.Notes.String
	}
	return b, nil
}

// Init creates the bookmarks table if it does not exist.
func (s *BookmarkStorage) Init(ctx context.Context) error {
	return s.gw.CreateTable(ctx, bookmarksTable, bookmarksColumns)
}

// Create inserts a bookmark. A zero DateAdded is stamped with the current time.
func (s *BookmarkStorage) Create(ctx context.Context, b *model.Bookmark) (*model.Bookmark, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	added := b.DateAdded
	if added.IsZero() {
		added = time.Now()
	}
	dateAdded := model.FormatTime(added)

	id, err := s.gw.Insert(ctx, bookmarksTable, map[string]any{
		"title":      b.Title,
		"url":        b.URL,
		"notes":      nullString(b.Notes),
		"date_added": dateAdded,
	})
	if err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}

	// Round-trip through the stored text so callers see what List will return.
	stored, err := model.ParseTime(dateAdded)
	if err != nil {
		return nil, err
	}
	return &model.Bookmark{
		ID:        id,
		Title:     b.Title,
		URL:       b.URL,
		Notes:     b.Notes,
		DateAdded: stored,
	}, nil
}

// List returns all bookmarks ordered by orderBy.
func (s *BookmarkStorage) List(ctx context.Context, orderBy model.Column) ([]*model.Bookmark, error) {
	var rows []bookmarkRow
	if err := s.gw.Select(ctx, &rows, bookmarksTable, nil, orderBy); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	bookmarks := make([]*model.Bookmark, 0, len(rows))
	for i := range rows {
		b, err := rows[i].toBookmark()
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, nil
}

// Edit updates only the fields named in changes.
func (s *BookmarkStorage) Edit(ctx context.Context, id int64, changes map[model.Column]string) error {
	if len(changes) == 0 {
		return model.ErrNoChanges
	}

	set := make(map[string]any, len(changes))
	for col, value := range changes {
		if !col.Editable() {
			return fmt.Errorf("%w: %q is not editable", model.ErrInvalidColumn, col)
		}
		if col != model.ColumnNotes && strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", model.ErrInvalidBookmark, col)
		}
		if col == model.ColumnNotes {
			set[string(col)] = nullString(value)
			continue
		}
		set[string(col)] = value
	}

	if _, err := s.gw.Update(ctx, bookmarksTable, set, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("edit bookmark %d: %w", id, err)
	}
	return nil
}

// Delete removes a bookmark by ID.
func (s *BookmarkStorage) Delete(ctx context.Context, id int64) error {
	if _, err := s.gw.Delete(ctx, bookmarksTable, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("delete bookmark %d: %w", id, err)
	}
	return nil
}

// Close closes the underlying gateway.
func (s *BookmarkStorage) Close() error {
	return s.gw.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
