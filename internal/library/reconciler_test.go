package library

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaldt/homestream/internal/models"
)

type fakeCatalog struct {
	movies []models.Movie
	series []models.Series
}

func (c *fakeCatalog) ScanMovies() []models.Movie  { return c.movies }
func (c *fakeCatalog) ScanSeries() []models.Series { return c.series }

type fakeProgress struct {
	rows     map[string]*models.WatchProgress
	upserted []*models.WatchProgress
	err      error
}

func (p *fakeProgress) Get(userID uuid.UUID, contentID string) (*models.WatchProgress, error) {
	return p.rows[contentID], p.err
}

func (p *fakeProgress) Upsert(row *models.WatchProgress) error {
	p.upserted = append(p.upserted, row)
	return p.err
}

func (p *fakeProgress) ListIncomplete(userID uuid.UUID, limit int) ([]*models.WatchProgress, error) {
	if p.err != nil {
		return nil, p.err
	}
	var rows []*models.WatchProgress
	for _, row := range p.rows {
		if !row.Completed && len(rows) < limit {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

type fakeWatchlist struct {
	entries map[string]*models.WatchlistEntry
	err     error
}

func newFakeWatchlist() *fakeWatchlist {
	return &fakeWatchlist{entries: make(map[string]*models.WatchlistEntry)}
}

func (w *fakeWatchlist) Add(e *models.WatchlistEntry) error {
	if w.err != nil {
		return w.err
	}
	w.entries[e.ContentID] = e
	return nil
}

func (w *fakeWatchlist) Remove(userID uuid.UUID, contentID string) error {
	delete(w.entries, contentID)
	return w.err
}

func (w *fakeWatchlist) Contains(userID uuid.UUID, contentID string) (bool, error) {
	_, ok := w.entries[contentID]
	return ok, w.err
}

func (w *fakeWatchlist) List(userID uuid.UUID) ([]*models.WatchlistEntry, error) {
	if w.err != nil {
		return nil, w.err
	}
	var out []*models.WatchlistEntry
	for _, e := range w.entries {
		out = append(out, e)
	}
	return out, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		movies: []models.Movie{
			{ID: "movie-1", Title: "Inception", Path: "/media/movies/Inception.mkv", Thumbnail: "t1"},
			{ID: "movie-2", Title: "Arrival", Path: "/media/movies/Arrival.mp4"},
		},
		series: []models.Series{
			{
				ID: "series-1", Title: "Breaking Bad", Path: "/media/series/Breaking.Bad",
				Seasons: []models.Season{
					{Number: 1, Episodes: []models.Episode{
						{ID: "ep-1", Title: "Pilot", SeriesTitle: "Breaking Bad", SeasonNumber: 1, EpisodeNumber: 1},
					}},
				},
			},
		},
	}
}

func TestMovieView(t *testing.T) {
	userID := uuid.New()
	progress := &fakeProgress{rows: map[string]*models.WatchProgress{
		"movie-1": {ContentID: "movie-1", CurrentTime: 120, Duration: 7200},
	}}
	watchlist := newFakeWatchlist()
	watchlist.entries["movie-2"] = &models.WatchlistEntry{ContentID: "movie-2"}

	r := NewReconciler(testCatalog(), progress, watchlist)
	items, err := r.MovieView(userID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Inception", items[0].Title)
	assert.Equal(t, models.ContentTypeMovie, items[0].Type)
	require.NotNil(t, items[0].Progress)
	assert.Equal(t, 120.0, items[0].Progress.CurrentTime)
	assert.False(t, items[0].InWatchlist)

	assert.Nil(t, items[1].Progress)
	assert.True(t, items[1].InWatchlist)
}

func TestMovieViewStoreError(t *testing.T) {
	progress := &fakeProgress{err: errors.New("db down")}
	r := NewReconciler(testCatalog(), progress, newFakeWatchlist())
	_, err := r.MovieView(uuid.New())
	assert.Error(t, err)
}

func TestSeriesView(t *testing.T) {
	watchlist := newFakeWatchlist()
	watchlist.entries["series-1"] = &models.WatchlistEntry{ContentID: "series-1"}

	r := NewReconciler(testCatalog(), &fakeProgress{}, watchlist)
	items, err := r.SeriesView(uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.ContentTypeSeries, items[0].Type)
	assert.True(t, items[0].InWatchlist)
}

func TestContinueWatching(t *testing.T) {
	progress := &fakeProgress{rows: map[string]*models.WatchProgress{
		"movie-1": {ContentID: "movie-1", CurrentTime: 600},
		"ep-1":    {ContentID: "ep-1", CurrentTime: 60},
		"gone":    {ContentID: "gone", CurrentTime: 10}, // stale, file deleted
		"done":    {ContentID: "done", Completed: true},
	}}

	r := NewReconciler(testCatalog(), progress, newFakeWatchlist())
	items, err := r.ContinueWatching(uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]models.ContentItem{}
	for _, it := range items {
		byID[it.ID] = it
	}

	assert.Equal(t, models.ContentTypeMovie, byID["movie-1"].Type)
	// Episodes surface as series cards.
	assert.Equal(t, models.ContentTypeSeries, byID["ep-1"].Type)
	assert.Equal(t, "Pilot", byID["ep-1"].Title)
	assert.NotContains(t, byID, "gone")
}

func TestSearch(t *testing.T) {
	r := NewReconciler(testCatalog(), &fakeProgress{}, newFakeWatchlist())

	items := r.Search("bad")
	require.Len(t, items, 1)
	assert.Equal(t, "Breaking Bad", items[0].Title)

	items = r.Search("INCEPTION")
	require.Len(t, items, 1)
	assert.Equal(t, models.ContentTypeMovie, items[0].Type)

	assert.Empty(t, r.Search(""))
	assert.Empty(t, r.Search("   "))
	assert.NotNil(t, r.Search("no such title"))
	assert.Empty(t, r.Search("no such title"))
}

func TestWatchlistView(t *testing.T) {
	watchlist := newFakeWatchlist()
	watchlist.entries["movie-1"] = &models.WatchlistEntry{ContentID: "movie-1"}
	watchlist.entries["series-1"] = &models.WatchlistEntry{ContentID: "series-1"}
	watchlist.entries["gone"] = &models.WatchlistEntry{ContentID: "gone"}

	r := NewReconciler(testCatalog(), &fakeProgress{}, watchlist)
	items, err := r.WatchlistView(uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.True(t, it.InWatchlist)
	}
}

func TestRecordProgress(t *testing.T) {
	progress := &fakeProgress{}
	r := NewReconciler(testCatalog(), progress, newFakeWatchlist())
	userID := uuid.New()

	err := r.RecordProgress(userID, "movie-1", models.ContentTypeMovie, 300, 7200, false)
	require.NoError(t, err)
	require.Len(t, progress.upserted, 1)

	row := progress.upserted[0]
	assert.Equal(t, userID, row.UserID)
	assert.Equal(t, "movie-1", row.ContentID)
	assert.Equal(t, 300.0, row.CurrentTime)
	assert.False(t, row.Completed)
	assert.NotEqual(t, uuid.Nil, row.ID)
}

func TestWatchlistMutation(t *testing.T) {
	watchlist := newFakeWatchlist()
	r := NewReconciler(testCatalog(), &fakeProgress{}, watchlist)
	userID := uuid.New()

	require.NoError(t, r.AddToWatchlist(userID, "movie-1", models.ContentTypeMovie))
	assert.Contains(t, watchlist.entries, "movie-1")

	require.NoError(t, r.RemoveFromWatchlist(userID, "movie-1"))
	assert.NotContains(t, watchlist.entries, "movie-1")

	// Removing something absent is not an error.
	require.NoError(t, r.RemoveFromWatchlist(userID, "movie-1"))
}
