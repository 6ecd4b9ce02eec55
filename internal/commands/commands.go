package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bunchhieng/bark/internal/logger"
	"github.com/bunchhieng/bark/internal/model"
	"github.com/bunchhieng/bark/internal/storage"
)

// Result is what a command hands back to the presentation layer. A nil error
// from Execute means the command succeeded.
type Result struct {
	Message   string
	Bookmarks []*model.Bookmark
	Imported  int
	// Quit asks the caller to end the session.
	Quit bool
}

// Set holds one command per user intent, all sharing one storage.
type Set struct {
	CreateTable *CreateTable
	Add         *Add
	ListByDate  *List
	ListByTitle *List
	Update      *Update
	Delete      *Delete
	Import      *ImportGitHubStars
	Quit        Quit
}

// NewSet wires every command to s. stars may be nil when importing is not
// configured; Import then fails with ErrImportUnavailable.
func NewSet(s storage.Storage, stars StarLister, log logger.Logger) *Set {
	add := NewAdd(s, log)
	return &Set{
		CreateTable: NewCreateTable(s),
		Add:         add,
		ListByDate:  NewList(s, model.ColumnDateAdded),
		ListByTitle: NewList(s, model.ColumnTitle),
		Update:      NewUpdate(s, log),
		Delete:      NewDelete(s, log),
		Import:      NewImportGitHubStars(stars, add, log),
	}
}

// CreateTable ensures the bookmarks table exists.
type CreateTable struct {
	storage storage.Storage
}

// NewCreateTable builds a CreateTable over s.
func NewCreateTable(s storage.Storage) *CreateTable {
	return &CreateTable{storage: s}
}

// Execute creates the bookmarks table if it does not exist.
func (c *CreateTable) Execute(ctx context.Context) (Result, error) {
	if err := c.storage.Init(ctx); err != nil {
		return Result{}, fmt.Errorf("create bookmarks table: %w", err)
	}
	return Result{}, nil
}

// AddInput is the payload for Add. DateAdded overrides the current time.
type AddInput struct {
	Title     string
	URL       string
	Notes     string
	DateAdded *time.Time
}

// Add stores a new bookmark stamped with the current UTC time.
type Add struct {
	storage storage.Storage
	log     logger.Logger
	now     func() time.Time
}

// NewAdd builds an Add that stamps bookmarks with time.Now.
func NewAdd(s storage.Storage, log logger.Logger) *Add {
	return &Add{storage: s, log: log, now: time.Now}
}

// Execute stores in and returns the created bookmark.
func (c *Add) Execute(ctx context.Context, in AddInput) (Result, error) {
	added := c.now().UTC()
	if in.DateAdded != nil {
		added = in.DateAdded.UTC()
	}

	created, err := c.storage.Create(ctx, &model.Bookmark{
		Title:     in.Title,
		URL:       in.URL,
		Notes:     in.Notes,
		DateAdded: added,
	})
	if err != nil {
		c.log.Error("add bookmark failed", logger.String("url", in.URL), logger.Error(err))
		return Result{}, fmt.Errorf("add bookmark: %w", err)
	}

	c.log.Debug("bookmark added", logger.Int64("id", created.ID), logger.String("url", created.URL))
	return Result{
		Message:   fmt.Sprintf("Added bookmark %q", created.Title),
		Bookmarks: []*model.Bookmark{created},
	}, nil
}

// List returns every bookmark ordered by a column fixed at construction.
type List struct {
	storage storage.Storage
	orderBy model.Column
}

// NewList builds a List ordered by orderBy, or by date_added when empty.
func NewList(s storage.Storage, orderBy model.Column) *List {
	if orderBy == "" {
		orderBy = model.ColumnDateAdded
	}
	return &List{storage: s, orderBy: orderBy}
}

// OrderBy reports the sort column.
func (c *List) OrderBy() model.Column {
	return c.orderBy
}

// Execute returns all bookmarks in the configured order.
func (c *List) Execute(ctx context.Context) (Result, error) {
	bookmarks, err := c.storage.List(ctx, c.orderBy)
	if err != nil {
		return Result{}, fmt.Errorf("list bookmarks: %w", err)
	}
	return Result{Bookmarks: bookmarks}, nil
}

// UpdateInput names the bookmark and the fields to change.
type UpdateInput struct {
	ID     int64
	Update map[model.Column]string
}

// Update changes only the named fields of one bookmark.
type Update struct {
	storage storage.Storage
	log     logger.Logger
}

// NewUpdate builds an Update over s.
func NewUpdate(s storage.Storage, log logger.Logger) *Update {
	return &Update{storage: s, log: log}
}

// Execute applies in.Update to the bookmark with in.ID.
func (c *Update) Execute(ctx context.Context, in UpdateInput) (Result, error) {
	if err := c.storage.Edit(ctx, in.ID, in.Update); err != nil {
		c.log.Error("update bookmark failed", logger.Int64("id", in.ID), logger.Error(err))
		return Result{}, fmt.Errorf("update bookmark: %w", err)
	}
	c.log.Debug("bookmark updated", logger.Int64("id", in.ID), logger.Int("fields", len(in.Update)))
	return Result{Message: fmt.Sprintf("Updated bookmark %d", in.ID)}, nil
}

// Delete removes one bookmark. Unknown IDs are not an error.
type Delete struct {
	storage storage.Storage
	log     logger.Logger
}

// NewDelete builds a Delete over s.
func NewDelete(s storage.Storage, log logger.Logger) *Delete {
	return &Delete{storage: s, log: log}
}

// Execute removes the bookmark with id.
func (c *Delete) Execute(ctx context.Context, id int64) (Result, error) {
	if err := c.storage.Delete(ctx, id); err != nil {
		c.log.Error("delete bookmark failed", logger.Int64("id", id), logger.Error(err))
		return Result{}, fmt.Errorf("delete bookmark: %w", err)
	}
	c.log.Debug("bookmark deleted", logger.Int64("id", id))
	return Result{Message: fmt.Sprintf("Deleted bookmark %d", id)}, nil
}

// Quit ends the session. It never exits the process itself.
type Quit struct{}

// Execute returns a result with Quit set.
func (Quit) Execute() Result {
	return Result{Message: "Goodbye!", Quit: true}
}
