package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bunchhieng/bark/internal/github"
	"github.com/bunchhieng/bark/internal/logger"
	"github.com/bunchhieng/bark/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type starredRepo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
}

type starredItem struct {
	StarredAt string      `json:"starred_at"`
	Repo      starredRepo `json:"repo"`
}

// starServer serves pages of /users/{user}/starred, linking each page to the
// next with a rel="next" header the way GitHub does.
type starServer struct {
	*httptest.Server
	pages    [][]starredItem
	failPage int
	requests atomic.Int32
	accept   atomic.Value
}

func newStarServer(t *testing.T, pages [][]starredItem) *starServer {
	t.Helper()
	s := &starServer{pages: pages}

	r := chi.NewRouter()
	r.Get("/users/{user}/starred", func(w http.ResponseWriter, req *http.Request) {
		s.requests.Add(1)
		s.accept.Store(req.Header.Get("Accept"))

		page, _ := strconv.Atoi(req.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		if page == s.failPage {
			http.Error(w, `{"message":"server error"}`, http.StatusInternalServerError)
			return
		}

		var items []starredItem
		if page <= len(s.pages) {
			items = s.pages[page-1]
		}
		if page < len(s.pages) {
			next := fmt.Sprintf("%s/users/%s/starred?page=%d&per_page=100", s.URL, chi.URLParam(req, "user"), page+1)
			w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		}
		w.Header().Set("Content-Type", "application/json")
		if items == nil {
			items = []starredItem{}
		}
		_ = json.NewEncoder(w).Encode(items)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *starServer) client(t *testing.T) *github.Client {
	t.Helper()
	c, err := github.NewClient(github.Options{BaseURL: s.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func twoPages() [][]starredItem {
	return [][]starredItem{
		{
			{StarredAt: "2020-01-02T03:04:05Z", Repo: starredRepo{Name: "alpha", HTMLURL: "https://github.com/o/alpha", Description: "first"}},
			{StarredAt: "2021-06-07T08:09:10Z", Repo: starredRepo{Name: "bravo", HTMLURL: "https://github.com/o/bravo", Description: "second"}},
		},
		{
			{StarredAt: "2022-11-12T13:14:15Z", Repo: starredRepo{Name: "charlie", HTMLURL: "https://github.com/o/charlie"}},
		},
	}
}

func TestImportFollowsNextLinks(t *testing.T) {
	srv := newStarServer(t, twoPages())
	set := newTestSet(t, srv.client(t))
	ctx := context.Background()

	res, err := set.Import.Execute(ctx, ImportInput{Username: "octocat", KeepTimestamps: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.EqualValues(t, 2, srv.requests.Load())
	assert.Contains(t, srv.accept.Load(), "star+json")

	listed, err := set.ListByDate.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Bookmarks, 3)

	want := []struct {
		title, url, notes string
		at                time.Time
	}{
		{"alpha", "https://github.com/o/alpha", "first", time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"bravo", "https://github.com/o/bravo", "second", time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)},
		{"charlie", "https://github.com/o/charlie", "", time.Date(2022, 11, 12, 13, 14, 15, 0, time.UTC)},
	}
	for i, w := range want {
		b := listed.Bookmarks[i]
		assert.Equal(t, w.title, b.Title)
		assert.Equal(t, w.url, b.URL)
		assert.Equal(t, w.notes, b.Notes)
		assert.True(t, b.DateAdded.Equal(w.at), "bookmark %s date %v, want %v", b.Title, b.DateAdded, w.at)
	}
}

func TestImportWithoutTimestampsUsesNow(t *testing.T) {
	srv := newStarServer(t, twoPages())
	set := newTestSet(t, srv.client(t))
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	res, err := set.Import.Execute(ctx, ImportInput{Username: "octocat"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)

	listed, err := set.ListByTitle.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Bookmarks, 3)
	for _, b := range listed.Bookmarks {
		assert.WithinDuration(t, time.Now(), b.DateAdded, time.Minute)
		assert.True(t, b.DateAdded.After(before))
	}
}

func TestImportEmptyStars(t *testing.T) {
	srv := newStarServer(t, nil)
	set := newTestSet(t, srv.client(t))

	res, err := set.Import.Execute(context.Background(), ImportInput{Username: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
}

func TestImportFailureKeepsPartialProgress(t *testing.T) {
	srv := newStarServer(t, twoPages())
	srv.failPage = 2
	set := newTestSet(t, srv.client(t))
	ctx := context.Background()

	res, err := set.Import.Execute(ctx, ImportInput{Username: "octocat"})
	require.Error(t, err)
	assert.Equal(t, 2, res.Imported)

	listed, err := set.ListByDate.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, listed.Bookmarks, 2)
}

func TestImportRequiresUsername(t *testing.T) {
	srv := newStarServer(t, twoPages())
	set := newTestSet(t, srv.client(t))

	_, err := set.Import.Execute(context.Background(), ImportInput{Username: "  "})
	assert.ErrorIs(t, err, ErrMissingUsername)
	assert.Zero(t, srv.requests.Load())
}

func TestImportUnavailable(t *testing.T) {
	set := newTestSet(t, nil)

	_, err := set.Import.Execute(context.Background(), ImportInput{Username: "octocat"})
	assert.ErrorIs(t, err, ErrImportUnavailable)
}

type loopingStars struct{ calls int }

func (l *loopingStars) StarredPage(_ context.Context, _ string, page int) ([]github.Star, int, error) {
	l.calls++
	return []github.Star{{Name: "r" + strconv.Itoa(l.calls), HTMLURL: "https://github.com/o/r"}}, page, nil
}

// warnRecorder counts warnings and discards everything else.
type warnRecorder struct {
	warns *[]string
}

func (r warnRecorder) Debug(string, ...zap.Field) {}
func (r warnRecorder) Info(string, ...zap.Field)  {}
func (r warnRecorder) Error(string, ...zap.Field) {}
func (r warnRecorder) Sync() error                { return nil }

func (r warnRecorder) Warn(msg string, _ ...zap.Field) {
	*r.warns = append(*r.warns, msg)
}

func (r warnRecorder) With(...zap.Field) logger.Logger {
	return r
}

func TestImportStopsOnBackwardsLink(t *testing.T) {
	stars := &loopingStars{}
	set := newTestSet(t, stars)

	var warns []string
	set.Import.log = warnRecorder{warns: &warns}

	res, err := set.Import.Execute(context.Background(), ImportInput{Username: "octocat"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, stars.calls)
	assert.Equal(t, []string{"ignoring backwards next link"}, warns)
}

type invalidStars struct{}

func (invalidStars) StarredPage(context.Context, string, int) ([]github.Star, int, error) {
	return []github.Star{{Name: "ok", HTMLURL: "https://github.com/o/ok"}, {Name: "", HTMLURL: ""}}, 0, nil
}

func TestImportStopsOnStorageError(t *testing.T) {
	set := newTestSet(t, invalidStars{})

	res, err := set.Import.Execute(context.Background(), ImportInput{Username: "octocat"})
	assert.ErrorIs(t, err, model.ErrInvalidBookmark)
	assert.Equal(t, 1, res.Imported)
}
