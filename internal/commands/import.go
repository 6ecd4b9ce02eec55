package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bunchhieng/bark/internal/github"
	"github.com/bunchhieng/bark/internal/logger"
	"github.com/bunchhieng/bark/internal/model"
)

var (
	// ErrMissingUsername indicates an import without a GitHub username.
	ErrMissingUsername = errors.New("github username is required")

	// ErrImportUnavailable indicates no star source was configured.
	ErrImportUnavailable = errors.New("github import is not configured")
)

// StarLister fetches one page of a user's starred repositories.
type StarLister interface {
	StarredPage(ctx context.Context, username string, page int) ([]github.Star, int, error)
}

// ImportInput is the payload for ImportGitHubStars.
type ImportInput struct {
	Username       string
	KeepTimestamps bool
}

// ImportGitHubStars walks every page of a user's stars and adds each one as a
// bookmark. Bookmarks added before a failing page are kept.
type ImportGitHubStars struct {
	stars StarLister
	add   *Add
	log   logger.Logger
}

// NewImportGitHubStars builds an import that stores each star through add.
func NewImportGitHubStars(stars StarLister, add *Add, log logger.Logger) *ImportGitHubStars {
	return &ImportGitHubStars{stars: stars, add: add, log: log}
}

// Execute returns the number imported. On error the Result still carries the
// count of bookmarks written before the failure.
func (c *ImportGitHubStars) Execute(ctx context.Context, in ImportInput) (Result, error) {
	if c.stars == nil {
		return Result{}, ErrImportUnavailable
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return Result{}, ErrMissingUsername
	}

	log := c.log.With(
		logger.String("run_id", model.NewRunID()),
		logger.String("username", username),
	)
	log.Info("importing github stars", logger.Bool("keep_timestamps", in.KeepTimestamps))

	imported := 0
	for page := 1; page != 0; {
		stars, next, err := c.stars.StarredPage(ctx, username, page)
		if err != nil {
			log.Error("fetch starred page failed", logger.Int("page", page), logger.Int("imported", imported), logger.Error(err))
			return partial(imported), fmt.Errorf("import stars of %s: %w", username, err)
		}
		log.Debug("fetched starred page", logger.Int("page", page), logger.Int("items", len(stars)), logger.Int("next", next))

		for _, star := range stars {
			input := AddInput{
				Title: star.Name,
				URL:   star.HTMLURL,
				Notes: star.Description,
			}
			if in.KeepTimestamps && !star.StarredAt.IsZero() {
				starredAt := star.StarredAt
				input.DateAdded = &starredAt
			}
			if _, err := c.add.Execute(ctx, input); err != nil {
				return partial(imported), fmt.Errorf("import %s: %w", star.HTMLURL, err)
			}
			imported++
		}

		// A next link pointing backwards would loop forever.
		if next != 0 && next <= page {
			log.Warn("ignoring backwards next link", logger.Int("page", page), logger.Int("next", next))
			break
		}
		page = next
	}

	log.Info("github stars imported", logger.Int("imported", imported))
	return Result{
		Message:  fmt.Sprintf("Imported %d bookmarks from %s's stars", imported, username),
		Imported: imported,
	}, nil
}

func partial(imported int) Result {
	return Result{
		Message:  fmt.Sprintf("Import stopped after %d bookmarks", imported),
		Imported: imported,
	}
}
