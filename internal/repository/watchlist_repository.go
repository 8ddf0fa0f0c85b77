package repository

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mwaldt/homestream/internal/models"
)

type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add inserts a watchlist entry. Adding the same content twice is a no-op.
func (r *WatchlistRepository) Add(e *models.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist (id, user_id, content_id, content_type, added_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, content_id) DO NOTHING`
	_, err := r.db.Exec(query, e.ID, e.UserID, e.ContentID, e.ContentType)
	return err
}

// Remove deletes an entry; removing something that was never added is fine.
func (r *WatchlistRepository) Remove(userID uuid.UUID, contentID string) error {
	_, err := r.db.Exec(
		`DELETE FROM watchlist WHERE user_id = $1 AND content_id = $2`,
		userID, contentID)
	return err
}

func (r *WatchlistRepository) Contains(userID uuid.UUID, contentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM watchlist WHERE user_id = $1 AND content_id = $2)`,
		userID, contentID).Scan(&exists)
	return exists, err
}

func (r *WatchlistRepository) List(userID uuid.UUID) ([]*models.WatchlistEntry, error) {
	query := `
		SELECT id, user_id, content_id, content_type, added_at
		FROM watchlist WHERE user_id = $1
		ORDER BY added_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.WatchlistEntry
	for rows.Next() {
		e := &models.WatchlistEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.ContentID, &e.ContentType, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
