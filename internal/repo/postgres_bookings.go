package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stagelink/booking-notifications/internal/model"
)

type PostgresBookingRepo struct {
	db *sql.DB
}

func NewPostgresBookingRepo(db *sql.DB) *PostgresBookingRepo {
	return &PostgresBookingRepo{db: db}
}

func (r *PostgresBookingRepo) ListAwaitingResponse(ctx context.Context, since time.Time) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, talent_id, event_type, event_location, event_date, status, created_at
		FROM bookings
		WHERE status IN ('pending', 'pending_approval')
		  AND talent_id IS NOT NULL
		  AND created_at >= $1
		ORDER BY created_at ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		var status string
		var talentID sql.NullString
		var eventDate sql.NullTime

		if err := rows.Scan(
			&b.ID,
			&talentID,
			&b.EventType,
			&b.EventLocation,
			&eventDate,
			&status,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}

		b.Status = model.BookingStatus(status)
		if talentID.Valid {
			s := talentID.String
			b.TalentID = &s
		}
		if eventDate.Valid {
			t := eventDate.Time
			b.EventDate = &t
		}

		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresBookingRepo) GetStatus(ctx context.Context, id string) (model.BookingStatus, error) {
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT status FROM bookings WHERE id = $1
	`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return model.BookingStatus(status), nil
}
