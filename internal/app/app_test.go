package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bunchhieng/bark/internal/commands"
	"github.com/bunchhieng/bark/internal/config"
	"github.com/bunchhieng/bark/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		DataDir: dir,
		DBPath:  filepath.Join(dir, "bookmarks.db"),
		GitHub:  config.GitHubConfig{PerPage: 100, Timeout: time.Second},
	}
}

func TestNewPersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := New(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	_, err = a.Commands.Add.Execute(ctx, commands.AddInput{Title: "Go", URL: "https://go.dev"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// Second start re-runs CreateTable against the existing file.
	b, err := New(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer b.Close()

	res, err := b.Commands.ListByDate.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, res.Bookmarks, 1)
	assert.Equal(t, "Go", res.Bookmarks[0].Title)
}

func TestNewRejectsBadGitHubURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub.BaseURL = "://bad"

	_, err := New(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
