package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allycar/outreach/internal/entity"
)

// SessionRepository é o store durável de sessões: mesma interface do
// MemoryStore, mas as conversas sobrevivem a restart do processo.
type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Get(ctx context.Context, phone string) (*entity.Session, error) {
	query := `
		SELECT phone, name, city, stage, category, interested, message, message_ts, completed
		FROM sessions
		WHERE phone = $1
	`

	var s entity.Session
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(
		&s.Phone,
		&s.Name,
		&s.City,
		&s.Stage,
		&s.Category,
		&s.Interested,
		&s.Message,
		&s.Timestamp,
		&s.Completed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (phone, name, city, stage, category, interested, message, message_ts, completed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (phone)
		DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			stage = EXCLUDED.stage,
			category = EXCLUDED.category,
			interested = EXCLUDED.interested,
			message = EXCLUDED.message,
			message_ts = EXCLUDED.message_ts,
			completed = EXCLUDED.completed,
			updated_at = NOW()
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		session.Phone,
		session.Name,
		session.City,
		string(session.Stage),
		session.Category,
		session.Interested,
		session.Message,
		session.Timestamp,
		session.Completed,
	)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, phone string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE phone = $1`, phone)
	return err
}

func (r *SessionRepository) All(ctx context.Context) (map[string]*entity.Session, error) {
	query := `
		SELECT phone, name, city, stage, category, interested, message, message_ts, completed
		FROM sessions
		ORDER BY updated_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*entity.Session)
	for rows.Next() {
		var s entity.Session
		err := rows.Scan(
			&s.Phone,
			&s.Name,
			&s.City,
			&s.Stage,
			&s.Category,
			&s.Interested,
			&s.Message,
			&s.Timestamp,
			&s.Completed,
		)
		if err != nil {
			return nil, err
		}
		out[s.Phone] = &s
	}

	return out, rows.Err()
}

func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}
