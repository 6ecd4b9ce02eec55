package model

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 layout used for date_added. The fixed-width
// fraction keeps text ordering identical to chronological ordering.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Column names a bookmarks column that callers may sort or edit by.
type Column string

const (
	ColumnID        Column = "id"
	ColumnTitle     Column = "title"
	ColumnURL       Column = "url"
	ColumnNotes     Column = "notes"
	ColumnDateAdded Column = "date_added"
)

// Sortable reports whether c may appear in an ORDER BY clause.
func (c Column) Sortable() bool {
	return c == ColumnDateAdded || c == ColumnTitle
}

// Editable reports whether c may be changed by an update.
func (c Column) Editable() bool {
	return c == ColumnTitle || c == ColumnURL || c == ColumnNotes
}

// ParseColumn maps user input such as "Title" to a Column.
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ColumnID, ColumnTitle, ColumnURL, ColumnNotes, ColumnDateAdded:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColumn, s)
}

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes,omitempty"`
	DateAdded time.Time `json:"date_added"`
}

// Validate checks that the required fields are present.
func (b *Bookmark) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidBookmark)
	}
	if strings.TrimSpace(b.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidBookmark)
	}
	return nil
}

// FormatTime renders t as stored in date_added.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a date_added value. Values written by older tools without
// a zone designator are read as UTC.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date_added %q: %w", s, err)
	}
	return t.UTC(), nil
}
