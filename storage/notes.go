package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ojtlog/ojt"

	"github.com/google/uuid"
)

const noteColumns = `id, user_id, title, content, note_type, ooo_date, ooo_time_start, ooo_time_end, full_day, created_at, updated_at`

// ListNotes returns the owner's notes, newest first. An empty noteType lists
// every type.
func (s *Store) ListNotes(ctx context.Context, owner string, noteType ojt.NoteType) ([]ojt.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ?`
	args := []any{owner}
	if noteType != "" {
		query += ` AND note_type = ?`
		args = append(args, string(noteType))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]ojt.Note, 0, 16)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (s *Store) GetNote(ctx context.Context, owner, id string) (ojt.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ? AND user_id = ?;`
	note, err := scanNote(s.db.QueryRowContext(ctx, s.rebind(query), id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ojt.Note{}, notFound("note", id)
		}
		return ojt.Note{}, err
	}
	return note, nil
}

func (s *Store) CreateNote(ctx context.Context, owner string, note ojt.Note) (ojt.Note, error) {
	now := s.timestamp()
	note.ID = uuid.NewString()
	note.UserID = owner
	note.CreatedAt = now
	note.UpdatedAt = now
	clearOOOFields(&note)

	const insert = `
INSERT INTO notes (` + noteColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	if _, err := s.exec(ctx, s.db, insert,
		note.ID, owner, note.Title, note.Content, string(note.Type),
		formatOptionalDay(note.OOODate), note.OOOTimeStart, note.OOOTimeEnd, boolToInt(note.FullDay),
		formatTime(note.CreatedAt), formatTime(note.UpdatedAt),
	); err != nil {
		return ojt.Note{}, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

func (s *Store) UpdateNote(ctx context.Context, owner string, note ojt.Note) (ojt.Note, error) {
	now := s.timestamp()
	clearOOOFields(&note)

	const update = `
UPDATE notes
SET title = ?, content = ?, note_type = ?, ooo_date = ?, ooo_time_start = ?, ooo_time_end = ?, full_day = ?, updated_at = ?
WHERE id = ? AND user_id = ?;`
	updated, err := s.exec(ctx, s.db, update,
		note.Title, note.Content, string(note.Type),
		formatOptionalDay(note.OOODate), note.OOOTimeStart, note.OOOTimeEnd, boolToInt(note.FullDay),
		formatTime(now), note.ID, owner,
	)
	if err != nil {
		return ojt.Note{}, fmt.Errorf("update note %s: %w", note.ID, err)
	}
	if updated == 0 {
		return ojt.Note{}, notFound("note", note.ID)
	}
	return s.GetNote(ctx, owner, note.ID)
}

func (s *Store) DeleteNote(ctx context.Context, owner, id string) error {
	deleted, err := s.exec(ctx, s.db, `DELETE FROM notes WHERE id = ? AND user_id = ?;`, id, owner)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if deleted == 0 {
		return notFound("note", id)
	}
	return nil
}

// clearOOOFields drops out-of-office data from regular notes and clock times
// from full-day absences.
func clearOOOFields(note *ojt.Note) {
	if note.Type != ojt.NoteOOO {
		note.OOODate = nil
		note.OOOTimeStart = ""
		note.OOOTimeEnd = ""
		note.FullDay = false
		return
	}
	if note.FullDay {
		note.OOOTimeStart = ""
		note.OOOTimeEnd = ""
	}
}

func scanNote(row rowScanner) (ojt.Note, error) {
	var (
		note       ojt.Note
		noteType   string
		oooDate    sql.NullString
		fullDay    int
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&noteType,
		&oooDate,
		&note.OOOTimeStart,
		&note.OOOTimeEnd,
		&fullDay,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ojt.Note{}, err
		}
		return ojt.Note{}, fmt.Errorf("scan note: %w", err)
	}

	var err error
	note.Type = ojt.NoteType(noteType)
	note.FullDay = fullDay != 0
	if note.OOODate, err = parseOptionalDay(oooDate); err != nil {
		return ojt.Note{}, err
	}
	if note.CreatedAt, err = parseTime(createdRaw); err != nil {
		return ojt.Note{}, err
	}
	if note.UpdatedAt, err = parseTime(updatedRaw); err != nil {
		return ojt.Note{}, err
	}
	return note, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
