package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/stagelink/booking-notifications/internal/model"
)

type PostgresEventRequestRepo struct {
	db *sql.DB
}

func NewPostgresEventRequestRepo(db *sql.DB) *PostgresEventRequestRepo {
	return &PostgresEventRequestRepo{db: db}
}

// The response-set columns are text[]; database/sql has no portable array
// scan, so the queries serialize them to JSON and decode on this side.
const eventRequestColumns = `
	id, event_type, event_location, event_date, talent_type_needed,
	array_to_json(coalesce(hidden_by_talents, '{}')),
	array_to_json(coalesce(accepted_by_talents, '{}')),
	array_to_json(coalesce(declined_by_talents, '{}')),
	status, created_at
`

func (r *PostgresEventRequestRepo) ListAwaitingResponse(ctx context.Context, since time.Time) ([]model.EventRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventRequestColumns+`
		FROM event_requests
		WHERE status = 'pending'
		  AND created_at >= $1
		ORDER BY created_at ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EventRequest
	for rows.Next() {
		req, err := scanEventRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (r *PostgresEventRequestRepo) Get(ctx context.Context, id string) (*model.EventRequest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventRequestColumns+`
		FROM event_requests
		WHERE id = $1
	`, id)

	req, err := scanEventRequest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func scanEventRequest(scan func(...any) error) (*model.EventRequest, error) {
	var req model.EventRequest
	var status string
	var typeNeeded sql.NullString
	var eventDate sql.NullTime
	var hidden, accepted, declined []byte

	if err := scan(
		&req.ID,
		&req.EventType,
		&req.EventLocation,
		&eventDate,
		&typeNeeded,
		&hidden,
		&accepted,
		&declined,
		&status,
		&req.CreatedAt,
	); err != nil {
		return nil, err
	}

	req.Status = model.BookingStatus(status)
	if typeNeeded.Valid {
		s := typeNeeded.String
		req.TalentTypeNeeded = &s
	}
	if eventDate.Valid {
		t := eventDate.Time
		req.EventDate = &t
	}

	for _, col := range []struct {
		raw []byte
		dst *[]string
	}{
		{hidden, &req.HiddenByTalents},
		{accepted, &req.AcceptedByTalents},
		{declined, &req.DeclinedByTalents},
	} {
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, err
		}
	}

	return &req, nil
}
