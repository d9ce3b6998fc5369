package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stagelink/booking-notifications/internal/model"
)

type PostgresTalentRepo struct {
	db *sql.DB
}

func NewPostgresTalentRepo(db *sql.DB) *PostgresTalentRepo {
	return &PostgresTalentRepo{db: db}
}

func (r *PostgresTalentRepo) GetByID(ctx context.Context, id string) (*model.TalentProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, location, act
		FROM talent_profiles
		WHERE id = $1
	`, id)

	t, err := scanTalent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresTalentRepo) ListByLocation(ctx context.Context, location string) ([]model.TalentProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, location, act
		FROM talent_profiles
		WHERE location = $1
	`, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TalentProfile
	for rows.Next() {
		t, err := scanTalent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func scanTalent(scan func(...any) error) (*model.TalentProfile, error) {
	var t model.TalentProfile
	var userID, location, act sql.NullString

	if err := scan(&t.ID, &userID, &location, &act); err != nil {
		return nil, err
	}

	if userID.Valid {
		s := userID.String
		t.UserID = &s
	}
	if location.Valid {
		s := location.String
		t.Location = &s
	}
	if act.Valid {
		s := act.String
		t.Act = &s
	}
	return &t, nil
}
