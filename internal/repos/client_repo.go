package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"shopbot/internal/domain"
)

type ClientRepo struct{ db *sqlx.DB }

func NewClientRepo(db *sqlx.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) ByTelegramID(telegramID int64) (domain.Client, error) {
	var c domain.Client
	err := r.db.Get(&c, `SELECT id, telegram_id, username, created_at FROM clients WHERE telegram_id = ?`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, ErrClientNotFound
	}
	return c, err
}

// GetOrCreate registers a client on first contact and refreshes the stored
// username whenever the platform reports a new one.
func (r *ClientRepo) GetOrCreate(telegramID int64, username string) (domain.Client, error) {
	c, err := r.ByTelegramID(telegramID)
	if err == nil {
		if c.Username != username {
			if _, err := r.db.Exec(`UPDATE clients SET username = ? WHERE id = ?`, username, c.ID); err != nil {
				return domain.Client{}, err
			}
			c.Username = username
		}
		return c, nil
	}
	if !errors.Is(err, ErrClientNotFound) {
		return domain.Client{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`INSERT INTO clients(telegram_id, username, created_at) VALUES(?,?,?)`,
		telegramID, username, now)
	if err != nil {
		return domain.Client{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Client{}, err
	}
	return domain.Client{ID: id, TelegramID: telegramID, Username: username, CreatedAt: now}, nil
}
