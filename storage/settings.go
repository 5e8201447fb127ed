package storage

import (
	"context"
	"database/sql"
	"fmt"

	"ojtlog/ojt"
)

// GetOrCreateSettings returns the owner's settings, storing defaults first
// when none exist. Concurrent first reads both see the same row.
func (s *Store) GetOrCreateSettings(ctx context.Context, owner string, defaults ojt.Settings) (ojt.Settings, error) {
	if defaults.RequiredHours <= 0 {
		defaults.RequiredHours = ojt.DefaultRequiredHours
	}

	const insert = `
INSERT INTO settings (user_id, required_hours, student_name, start_date, end_date)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id) DO NOTHING;`
	if _, err := s.exec(ctx, s.db, insert,
		owner, defaults.RequiredHours, defaults.StudentName,
		formatOptionalDay(defaults.StartDate), formatOptionalDay(defaults.EndDate),
	); err != nil {
		return ojt.Settings{}, fmt.Errorf("create default settings: %w", err)
	}

	return s.getSettings(ctx, owner)
}

// SaveSettings replaces the owner's settings.
func (s *Store) SaveSettings(ctx context.Context, settings ojt.Settings) (ojt.Settings, error) {
	const upsert = `
INSERT INTO settings (user_id, required_hours, student_name, start_date, end_date)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
	required_hours = excluded.required_hours,
	student_name = excluded.student_name,
	start_date = excluded.start_date,
	end_date = excluded.end_date;`
	if _, err := s.exec(ctx, s.db, upsert,
		settings.UserID, settings.RequiredHours, settings.StudentName,
		formatOptionalDay(settings.StartDate), formatOptionalDay(settings.EndDate),
	); err != nil {
		return ojt.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	return s.getSettings(ctx, settings.UserID)
}

func (s *Store) getSettings(ctx context.Context, owner string) (ojt.Settings, error) {
	const query = `
SELECT user_id, required_hours, student_name, start_date, end_date
FROM settings
WHERE user_id = ?;`

	var (
		settings  ojt.Settings
		startDate sql.NullString
		endDate   sql.NullString
	)
	if err := s.db.QueryRowContext(ctx, s.rebind(query), owner).Scan(
		&settings.UserID,
		&settings.RequiredHours,
		&settings.StudentName,
		&startDate,
		&endDate,
	); err != nil {
		return ojt.Settings{}, fmt.Errorf("query settings: %w", err)
	}

	var err error
	if settings.StartDate, err = parseOptionalDay(startDate); err != nil {
		return ojt.Settings{}, err
	}
	if settings.EndDate, err = parseOptionalDay(endDate); err != nil {
		return ojt.Settings{}, err
	}
	return settings, nil
}
