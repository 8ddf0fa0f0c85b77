// Package library joins the ephemeral catalog produced by a scan with the
// per-user state held in Postgres, producing the content views the client
// renders.
package library

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mwaldt/homestream/internal/models"
)

// ContinueWatchingLimit caps how many unfinished items surface on the home
// screen.
const ContinueWatchingLimit = 10

// Catalog produces the current filesystem-derived content set. Each call is
// a fresh scan.
type Catalog interface {
	ScanMovies() []models.Movie
	ScanSeries() []models.Series
}

type ProgressStore interface {
	Get(userID uuid.UUID, contentID string) (*models.WatchProgress, error)
	Upsert(p *models.WatchProgress) error
	ListIncomplete(userID uuid.UUID, limit int) ([]*models.WatchProgress, error)
}

type WatchlistStore interface {
	Add(e *models.WatchlistEntry) error
	Remove(userID uuid.UUID, contentID string) error
	Contains(userID uuid.UUID, contentID string) (bool, error)
	List(userID uuid.UUID) ([]*models.WatchlistEntry, error)
}

type Reconciler struct {
	catalog   Catalog
	progress  ProgressStore
	watchlist WatchlistStore
}

func NewReconciler(catalog Catalog, progress ProgressStore, watchlist WatchlistStore) *Reconciler {
	return &Reconciler{catalog: catalog, progress: progress, watchlist: watchlist}
}

// MovieView returns every movie in the catalog joined with the user's
// progress and watchlist membership.
func (r *Reconciler) MovieView(userID uuid.UUID) ([]models.ContentItem, error) {
	movies := r.catalog.ScanMovies()
	items := make([]models.ContentItem, 0, len(movies))
	for _, m := range movies {
		progress, err := r.progress.Get(userID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("load progress for %s: %w", m.ID, err)
		}
		inList, err := r.watchlist.Contains(userID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("check watchlist for %s: %w", m.ID, err)
		}
		items = append(items, models.ContentItem{
			ID:          m.ID,
			Title:       m.Title,
			Type:        models.ContentTypeMovie,
			Path:        m.Path,
			Thumbnail:   m.Thumbnail,
			Subtitles:   m.Subtitles,
			Progress:    progress,
			InWatchlist: inList,
		})
	}
	return items, nil
}

// SeriesView returns every series joined with the watchlist flag. Progress
// is tracked per episode, so there is no series-level progress join.
func (r *Reconciler) SeriesView(userID uuid.UUID) ([]models.ContentItem, error) {
	series := r.catalog.ScanSeries()
	items := make([]models.ContentItem, 0, len(series))
	for _, sr := range series {
		inList, err := r.watchlist.Contains(userID, sr.ID)
		if err != nil {
			return nil, fmt.Errorf("check watchlist for %s: %w", sr.ID, err)
		}
		items = append(items, models.ContentItem{
			ID:          sr.ID,
			Title:       sr.Title,
			Type:        models.ContentTypeSeries,
			Path:        sr.Path,
			Thumbnail:   sr.Thumbnail,
			InWatchlist: inList,
		})
	}
	return items, nil
}

// SeriesDetails returns the full series/season/episode trees.
func (r *Reconciler) SeriesDetails() []models.Series {
	return r.catalog.ScanSeries()
}

// ContinueWatching resolves the user's most recent unfinished progress rows
// against the current catalog. Rows whose content no longer exists (file
// deleted or renamed since the progress was recorded) are dropped silently.
// An episode surfaces typed as "series", since that is the card the client
// shows for it.
func (r *Reconciler) ContinueWatching(userID uuid.UUID) ([]models.ContentItem, error) {
	rows, err := r.progress.ListIncomplete(userID, ContinueWatchingLimit)
	if err != nil {
		return nil, fmt.Errorf("list incomplete progress: %w", err)
	}

	movies := r.catalog.ScanMovies()
	series := r.catalog.ScanSeries()

	items := make([]models.ContentItem, 0, len(rows))
	for _, p := range rows {
		if m, ok := findMovie(movies, p.ContentID); ok {
			items = append(items, models.ContentItem{
				ID:        m.ID,
				Title:     m.Title,
				Type:      models.ContentTypeMovie,
				Path:      m.Path,
				Thumbnail: m.Thumbnail,
				Progress:  p,
			})
			continue
		}
		if ep, ok := findEpisode(series, p.ContentID); ok {
			items = append(items, models.ContentItem{
				ID:       ep.ID,
				Title:    ep.Title,
				Type:     models.ContentTypeSeries,
				Path:     ep.Path,
				Progress: p,
			})
		}
	}
	return items, nil
}

// Search matches the query case-insensitively against movie and series
// titles. An empty query matches nothing.
func (r *Reconciler) Search(query string) []models.ContentItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.ContentItem{}
	}

	var items []models.ContentItem
	for _, m := range r.catalog.ScanMovies() {
		if strings.Contains(strings.ToLower(m.Title), q) {
			items = append(items, models.ContentItem{
				ID:        m.ID,
				Title:     m.Title,
				Type:      models.ContentTypeMovie,
				Path:      m.Path,
				Thumbnail: m.Thumbnail,
			})
		}
	}
	for _, sr := range r.catalog.ScanSeries() {
		if strings.Contains(strings.ToLower(sr.Title), q) {
			items = append(items, models.ContentItem{
				ID:        sr.ID,
				Title:     sr.Title,
				Type:      models.ContentTypeSeries,
				Path:      sr.Path,
				Thumbnail: sr.Thumbnail,
			})
		}
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	return items
}

// WatchlistView resolves the user's watchlist entries against the current
// catalog; entries whose content disappeared are dropped.
func (r *Reconciler) WatchlistView(userID uuid.UUID) ([]models.ContentItem, error) {
	entries, err := r.watchlist.List(userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	movies := r.catalog.ScanMovies()
	series := r.catalog.ScanSeries()

	items := make([]models.ContentItem, 0, len(entries))
	for _, e := range entries {
		if m, ok := findMovie(movies, e.ContentID); ok {
			items = append(items, models.ContentItem{
				ID:          m.ID,
				Title:       m.Title,
				Type:        models.ContentTypeMovie,
				Path:        m.Path,
				Thumbnail:   m.Thumbnail,
				InWatchlist: true,
			})
			continue
		}
		if sr, ok := findSeries(series, e.ContentID); ok {
			items = append(items, models.ContentItem{
				ID:          sr.ID,
				Title:       sr.Title,
				Type:        models.ContentTypeSeries,
				Path:        sr.Path,
				Thumbnail:   sr.Thumbnail,
				InWatchlist: true,
			})
		}
	}
	return items, nil
}

// RecordProgress upserts the single progress row for (user, content).
func (r *Reconciler) RecordProgress(userID uuid.UUID, contentID string, contentType models.ContentType, currentTime, duration float64, completed bool) error {
	p := &models.WatchProgress{
		ID:          uuid.New(),
		UserID:      userID,
		ContentID:   contentID,
		ContentType: contentType,
		CurrentTime: currentTime,
		Duration:    duration,
		Completed:   completed,
	}
	return r.progress.Upsert(p)
}

func (r *Reconciler) AddToWatchlist(userID uuid.UUID, contentID string, contentType models.ContentType) error {
	return r.watchlist.Add(&models.WatchlistEntry{
		ID:          uuid.New(),
		UserID:      userID,
		ContentID:   contentID,
		ContentType: contentType,
	})
}

func (r *Reconciler) RemoveFromWatchlist(userID uuid.UUID, contentID string) error {
	return r.watchlist.Remove(userID, contentID)
}

func findMovie(movies []models.Movie, id string) (models.Movie, bool) {
	for _, m := range movies {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

func findSeries(series []models.Series, id string) (models.Series, bool) {
	for _, sr := range series {
		if sr.ID == id {
			return sr, true
		}
	}
	return models.Series{}, false
}

func findEpisode(series []models.Series, id string) (models.Episode, bool) {
	for _, sr := range series {
		for _, sn := range sr.Seasons {
			for _, ep := range sn.Episodes {
				if ep.ID == id {
					return ep, true
				}
			}
		}
	}
	return models.Episode{}, false
}
