package models

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────── Enums ────────────────────

// ContentType classifies what a content identifier points at.
type ContentType string

const (
	ContentTypeMovie   ContentType = "movie"
	ContentTypeSeries  ContentType = "series"
	ContentTypeEpisode ContentType = "episode"
)

// ──────────────────── User ────────────────────

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ──────────────────── Persisted per-user state ────────────────────

// WatchProgress is one row per (user, content) pair, updated in place on
// every progress report.
type WatchProgress struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	ContentID   string      `json:"content_id" db:"content_id"`
	ContentType ContentType `json:"content_type" db:"content_type"`
	CurrentTime float64     `json:"current_time" db:"current_time_seconds"`
	Duration    float64     `json:"duration" db:"duration_seconds"`
	Completed   bool        `json:"completed" db:"completed"`
	LastWatched time.Time   `json:"last_watched" db:"last_watched"`
}

type WatchlistEntry struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	ContentID   string      `json:"content_id" db:"content_id"`
	ContentType ContentType `json:"content_type" db:"content_type"`
	AddedAt     time.Time   `json:"added_at" db:"added_at"`
}

// ──────────────────── Catalog (scan-scoped, never persisted) ────────────────────

type Movie struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Filename  string   `json:"filename"`
	Path      string   `json:"path"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Subtitles []string `json:"subtitles,omitempty"`
}

type Series struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Path      string   `json:"path"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Seasons   []Season `json:"seasons"`
}

type Season struct {
	Number   int       `json:"number"`
	Episodes []Episode `json:"episodes"`
}

type Episode struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Filename      string   `json:"filename"`
	Path          string   `json:"path"`
	SeriesTitle   string   `json:"seriesTitle"`
	SeasonNumber  int      `json:"seasonNumber"`
	EpisodeNumber int      `json:"episodeNumber"`
	Subtitles     []string `json:"subtitles,omitempty"`
}

// ──────────────────── View model ────────────────────

// ContentItem is a catalog entry joined with the requesting user's persisted
// state. Recomputed per request, never stored.
type ContentItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        ContentType    `json:"type"`
	Path        string         `json:"path"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Subtitles   []string       `json:"subtitles,omitempty"`
	Progress    *WatchProgress `json:"progress,omitempty"`
	InWatchlist bool           `json:"inWatchlist"`
}
