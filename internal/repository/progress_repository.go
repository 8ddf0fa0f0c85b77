package repository

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mwaldt/homestream/internal/models"
)

type ProgressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert writes a progress report. The (user_id, content_id) pair is unique,
// so repeated reports for the same content update the single existing row.
func (r *ProgressRepository) Upsert(p *models.WatchProgress) error {
	query := `
		INSERT INTO watch_progress (id, user_id, content_id, content_type,
		                            current_time_seconds, duration_seconds, completed, last_watched)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, content_id) DO UPDATE SET
		    current_time_seconds = EXCLUDED.current_time_seconds,
		    duration_seconds = EXCLUDED.duration_seconds,
		    completed = EXCLUDED.completed,
		    content_type = EXCLUDED.content_type,
		    last_watched = CURRENT_TIMESTAMP
		RETURNING id, last_watched`
	return r.db.QueryRow(query, p.ID, p.UserID, p.ContentID, p.ContentType,
		p.CurrentTime, p.Duration, p.Completed).
		Scan(&p.ID, &p.LastWatched)
}

func (r *ProgressRepository) Get(userID uuid.UUID, contentID string) (*models.WatchProgress, error) {
	p := &models.WatchProgress{}
	query := `
		SELECT id, user_id, content_id, content_type, current_time_seconds,
		       duration_seconds, completed, last_watched
		FROM watch_progress WHERE user_id = $1 AND content_id = $2`
	err := r.db.QueryRow(query, userID, contentID).Scan(
		&p.ID, &p.UserID, &p.ContentID, &p.ContentType,
		&p.CurrentTime, &p.Duration, &p.Completed, &p.LastWatched,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// ListIncomplete returns the user's unfinished progress rows, most recently
// watched first.
func (r *ProgressRepository) ListIncomplete(userID uuid.UUID, limit int) ([]*models.WatchProgress, error) {
	query := `
		SELECT id, user_id, content_id, content_type, current_time_seconds,
		       duration_seconds, completed, last_watched
		FROM watch_progress
		WHERE user_id = $1 AND completed = false
		ORDER BY last_watched DESC
		LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.WatchProgress
	for rows.Next() {
		p := &models.WatchProgress{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ContentID, &p.ContentType,
			&p.CurrentTime, &p.Duration, &p.Completed, &p.LastWatched,
		); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
