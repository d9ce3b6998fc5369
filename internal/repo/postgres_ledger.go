package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stagelink/booking-notifications/internal/model"
)

type PostgresReminderLedger struct {
	db *sql.DB
}

func NewPostgresReminderLedger(db *sql.DB) *PostgresReminderLedger {
	return &PostgresReminderLedger{db: db}
}

// Claim does the cooldown check and the append in a single conditional
// INSERT, so two overlapping passes cannot both write an entry for the same
// pair within one window.
func (l *PostgresReminderLedger) Claim(ctx context.Context, entry model.LedgerEntry, windowStart time.Time) (bool, error) {
	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO reminder_ledger (id, user_id, request_id, kind, title, body, url, sent_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE NOT EXISTS (
			SELECT 1 FROM reminder_ledger
			WHERE user_id = $2
			  AND request_id = $3
			  AND sent_at >= $9
		)
	`,
		id,
		entry.UserID,
		entry.RequestID,
		string(entry.Kind),
		entry.Title,
		entry.Body,
		entry.URL,
		entry.SentAt.UTC(),
		windowStart.UTC(),
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (l *PostgresReminderLedger) ListRecent(ctx context.Context, limit, offset int) ([]model.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, user_id, request_id, kind, title, body, url, sent_at
		FROM reminder_ledger
		ORDER BY sent_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		var kind string
		var url sql.NullString

		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.RequestID,
			&kind,
			&e.Title,
			&e.Body,
			&url,
			&e.SentAt,
		); err != nil {
			return nil, err
		}

		e.Kind = model.RequestKind(kind)
		if url.Valid {
			e.URL = url.String
		}

		out = append(out, e)
	}
	return out, rows.Err()
}
