package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ojtlog/hours"
	"ojtlog/internal/timeutil"
	"ojtlog/ojt"

	"github.com/google/uuid"
)

// DateRange limits entry listings to [From, To], both inclusive. Zero values
// leave that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (s *Store) ListEntries(ctx context.Context, owner string) ([]ojt.Entry, error) {
	return s.ListEntriesInRange(ctx, owner, DateRange{})
}

// ListEntriesInRange returns the owner's entries newest day first. Entry
// totals are recomputed from their tasks.
func (s *Store) ListEntriesInRange(ctx context.Context, owner string, window DateRange) ([]ojt.Entry, error) {
	query := `
SELECT id, user_id, entry_date, supervisor, notes, created_at, updated_at
FROM entries
WHERE user_id = ?`
	args := []any{owner}
	if !window.From.IsZero() {
		query += ` AND entry_date >= ?`
		args = append(args, timeutil.DayKey(window.From))
	}
	if !window.To.IsZero() {
		query += ` AND entry_date <= ?`
		args = append(args, timeutil.DayKey(window.To))
	}
	query += ` ORDER BY entry_date DESC, created_at DESC;`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]ojt.Entry, 0, 64)
	index := make(map[string]int)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		index[entry.ID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	tasks, err := s.listOwnerTasks(ctx, s.db, owner)
	if err != nil {
		return nil, err
	}
	for entryID, entryTasks := range tasks {
		if i, ok := index[entryID]; ok {
			entries[i].Tasks = entryTasks
		}
	}
	for i := range entries {
		entries[i].TotalHours = entries[i].SumHours()
	}

	return entries, nil
}

func (s *Store) GetEntry(ctx context.Context, owner, id string) (ojt.Entry, error) {
	return s.getEntry(ctx, s.db, owner, id)
}

func (s *Store) getEntry(ctx context.Context, q execer, owner, id string) (ojt.Entry, error) {
	const query = `
SELECT id, user_id, entry_date, supervisor, notes, created_at, updated_at
FROM entries
WHERE id = ? AND user_id = ?;`

	entry, err := scanEntry(q.QueryRowContext(ctx, s.rebind(query), id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ojt.Entry{}, notFound("entry", id)
		}
		return ojt.Entry{}, err
	}

	entry.Tasks, err = s.listEntryTasks(ctx, q, id)
	if err != nil {
		return ojt.Entry{}, err
	}
	entry.TotalHours = entry.SumHours()
	return entry, nil
}

// CreateEntry stores a new entry with its tasks. Hours are derived from each
// task's clock times; an entry without tasks is rejected.
func (s *Store) CreateEntry(ctx context.Context, owner string, entry ojt.Entry) (ojt.Entry, error) {
	if len(entry.Tasks) == 0 {
		return ojt.Entry{}, ojt.ErrEmptyEntry
	}

	now := s.timestamp()
	entry.ID = uuid.NewString()
	entry.UserID = owner
	entry.Date = timeutil.StartOfDay(entry.Date)
	entry.CreatedAt = now
	entry.UpdatedAt = now

	tasks, err := prepareTasks(entry.Tasks, nil, now)
	if err != nil {
		return ojt.Entry{}, err
	}
	entry.Tasks = tasks
	entry.TotalHours = entry.SumHours()

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		const insertEntry = `
INSERT INTO entries (id, user_id, entry_date, supervisor, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?);`
		if _, err := s.exec(ctx, tx, insertEntry,
			entry.ID, owner, timeutil.DayKey(entry.Date), entry.Supervisor, entry.Notes,
			formatTime(entry.CreatedAt), formatTime(entry.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		return s.insertTasks(ctx, tx, entry.ID, entry.Tasks)
	})
	if err != nil {
		return ojt.Entry{}, err
	}

	return entry, nil
}

// ReplaceEntry overwrites an entry and swaps its whole task list in one
// transaction. Submitted tasks that already belong to the entry keep their id
// and creation time. Replacing with zero tasks deletes the entry; the returned
// entry then has no tasks.
func (s *Store) ReplaceEntry(ctx context.Context, owner string, entry ojt.Entry) (ojt.Entry, error) {
	now := s.timestamp()
	var result ojt.Entry

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := s.getEntry(ctx, tx, owner, entry.ID)
		if err != nil {
			return err
		}

		if len(entry.Tasks) == 0 {
			if err := s.deleteEntry(ctx, tx, owner, entry.ID); err != nil {
				return err
			}
			result = current
			result.Tasks = []ojt.Task{}
			result.TotalHours = 0
			return nil
		}

		existing := make(map[string]ojt.Task, len(current.Tasks))
		for _, task := range current.Tasks {
			existing[task.ID] = task
		}
		tasks, err := prepareTasks(entry.Tasks, existing, now)
		if err != nil {
			return err
		}

		const updateEntry = `
UPDATE entries
SET entry_date = ?, supervisor = ?, notes = ?, updated_at = ?
WHERE id = ? AND user_id = ?;`
		updated, err := s.exec(ctx, tx, updateEntry,
			timeutil.DayKey(entry.Date), entry.Supervisor, entry.Notes, formatTime(now),
			entry.ID, owner,
		)
		if err != nil {
			return fmt.Errorf("update entry %s: %w", entry.ID, err)
		}
		if updated == 0 {
			return notFound("entry", entry.ID)
		}

		if _, err := s.exec(ctx, tx, `DELETE FROM tasks WHERE entry_id = ?;`, entry.ID); err != nil {
			return fmt.Errorf("delete tasks of entry %s: %w", entry.ID, err)
		}
		if err := s.insertTasks(ctx, tx, entry.ID, tasks); err != nil {
			return err
		}

		result = current
		result.Date = timeutil.StartOfDay(entry.Date)
		result.Supervisor = entry.Supervisor
		result.Notes = entry.Notes
		result.UpdatedAt = now
		result.Tasks = tasks
		result.TotalHours = result.SumHours()
		return nil
	})
	if err != nil {
		return ojt.Entry{}, err
	}

	return result, nil
}

func (s *Store) DeleteEntry(ctx context.Context, owner, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.deleteEntry(ctx, tx, owner, id)
	})
}

func (s *Store) deleteEntry(ctx context.Context, q execer, owner, id string) error {
	const deleteTasks = `
DELETE FROM tasks
WHERE entry_id IN (SELECT id FROM entries WHERE id = ? AND user_id = ?);`
	if _, err := s.exec(ctx, q, deleteTasks, id, owner); err != nil {
		return fmt.Errorf("delete tasks of entry %s: %w", id, err)
	}

	deleted, err := s.exec(ctx, q, `DELETE FROM entries WHERE id = ? AND user_id = ?;`, id, owner)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if deleted == 0 {
		return notFound("entry", id)
	}
	return nil
}

// DeleteTask removes one task from an entry. When it was the entry's last
// task the entry is removed too and entryDeleted is true.
func (s *Store) DeleteTask(ctx context.Context, owner, entryID, taskID string) (entryDeleted bool, err error) {
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM entries WHERE id = ? AND user_id = ?;`), entryID, owner).Scan(&exists)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound("entry", entryID)
			}
			return fmt.Errorf("query entry %s: %w", entryID, err)
		}

		deleted, err := s.exec(ctx, tx, `DELETE FROM tasks WHERE id = ? AND entry_id = ?;`, taskID, entryID)
		if err != nil {
			return fmt.Errorf("delete task %s: %w", taskID, err)
		}
		if deleted == 0 {
			return notFound("task", taskID)
		}

		var remaining int
		if err := tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM tasks WHERE entry_id = ?;`), entryID).Scan(&remaining); err != nil {
			return fmt.Errorf("count tasks of entry %s: %w", entryID, err)
		}
		if remaining == 0 {
			entryDeleted = true
			return s.deleteEntry(ctx, tx, owner, entryID)
		}

		_, err = s.exec(ctx, tx, `UPDATE entries SET updated_at = ? WHERE id = ? AND user_id = ?;`,
			formatTime(s.timestamp()), entryID, owner)
		if err != nil {
			return fmt.Errorf("touch entry %s: %w", entryID, err)
		}
		return nil
	})
	return entryDeleted, err
}

// ImportEntries stores entries for owner in one transaction and returns how
// many were written.
func (s *Store) ImportEntries(ctx context.Context, owner string, entries []ojt.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	now := s.timestamp()
	prepared := make([]ojt.Entry, 0, len(entries))
	for _, entry := range entries {
		if len(entry.Tasks) == 0 {
			continue
		}
		tasks, err := prepareTasks(entry.Tasks, nil, now)
		if err != nil {
			return 0, fmt.Errorf("entry %s: %w", timeutil.DayKey(entry.Date), err)
		}
		entry.ID = uuid.NewString()
		entry.Tasks = tasks
		prepared = append(prepared, entry)
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO entries (id, user_id, entry_date, supervisor, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?);`))
		if err != nil {
			return fmt.Errorf("prepare insert statement: %w", err)
		}
		defer stmt.Close()

		for _, entry := range prepared {
			if _, err := stmt.ExecContext(ctx,
				entry.ID, owner, timeutil.DayKey(entry.Date), entry.Supervisor, entry.Notes,
				formatTime(now), formatTime(now),
			); err != nil {
				return fmt.Errorf("insert entry: %w", err)
			}
			if err := s.insertTasks(ctx, tx, entry.ID, entry.Tasks); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(prepared), nil
}

func (s *Store) insertTasks(ctx context.Context, tx *sql.Tx, entryID string, tasks []ojt.Task) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO tasks (
	id, entry_id, position, time_in, time_out, hours_rendered,
	task_name, category, status, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`))
	if err != nil {
		return fmt.Errorf("prepare task insert statement: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err := stmt.ExecContext(ctx,
			task.ID, entryID, i, task.TimeIn, task.TimeOut, task.HoursRendered,
			task.Name, string(task.Category), string(task.Status),
			formatTime(task.CreatedAt), formatTime(task.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
	}
	return nil
}

func (s *Store) listEntryTasks(ctx context.Context, q execer, entryID string) ([]ojt.Task, error) {
	const query = `
SELECT entry_id, id, time_in, time_out, hours_rendered, task_name, category, status, created_at, updated_at
FROM tasks
WHERE entry_id = ?
ORDER BY position;`

	grouped, err := s.queryTasks(ctx, q, query, entryID)
	if err != nil {
		return nil, err
	}
	if tasks, ok := grouped[entryID]; ok {
		return tasks, nil
	}
	return []ojt.Task{}, nil
}

func (s *Store) listOwnerTasks(ctx context.Context, q execer, owner string) (map[string][]ojt.Task, error) {
	const query = `
SELECT t.entry_id, t.id, t.time_in, t.time_out, t.hours_rendered, t.task_name, t.category, t.status, t.created_at, t.updated_at
FROM tasks t
JOIN entries e ON e.id = t.entry_id
WHERE e.user_id = ?
ORDER BY t.entry_id, t.position;`

	return s.queryTasks(ctx, q, query, owner)
}

func (s *Store) queryTasks(ctx context.Context, q execer, query string, args ...any) (map[string][]ojt.Task, error) {
	rows, err := q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]ojt.Task)
	for rows.Next() {
		var (
			entryID    string
			task       ojt.Task
			category   string
			status     string
			createdRaw string
			updatedRaw string
		)
		if err := rows.Scan(
			&entryID,
			&task.ID,
			&task.TimeIn,
			&task.TimeOut,
			&task.HoursRendered,
			&task.Name,
			&category,
			&status,
			&createdRaw,
			&updatedRaw,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Category = ojt.Category(category)
		task.Status = ojt.Status(status)
		if task.CreatedAt, err = parseTime(createdRaw); err != nil {
			return nil, err
		}
		if task.UpdatedAt, err = parseTime(updatedRaw); err != nil {
			return nil, err
		}
		out[entryID] = append(out[entryID], task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (ojt.Entry, error) {
	var (
		entry      ojt.Entry
		dateRaw    string
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&dateRaw,
		&entry.Supervisor,
		&entry.Notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ojt.Entry{}, err
		}
		return ojt.Entry{}, fmt.Errorf("scan entry: %w", err)
	}

	var err error
	if entry.Date, err = parseDay(dateRaw); err != nil {
		return ojt.Entry{}, err
	}
	if entry.CreatedAt, err = parseTime(createdRaw); err != nil {
		return ojt.Entry{}, err
	}
	if entry.UpdatedAt, err = parseTime(updatedRaw); err != nil {
		return ojt.Entry{}, err
	}
	entry.Tasks = []ojt.Task{}
	return entry, nil
}

// prepareTasks assigns ids and timestamps and derives hours from clock
// times. Tasks found in existing keep their id and creation time; a repeated
// id only does so for its first occurrence.
func prepareTasks(tasks []ojt.Task, existing map[string]ojt.Task, now time.Time) ([]ojt.Task, error) {
	out := make([]ojt.Task, 0, len(tasks))
	used := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		rendered, err := hours.Between(task.TimeIn, task.TimeOut)
		if err != nil {
			return nil, err
		}
		task.HoursRendered = rendered

		_, seen := used[task.ID]
		if previous, ok := existing[task.ID]; ok && task.ID != "" && !seen {
			task.CreatedAt = previous.CreatedAt
		} else {
			task.ID = uuid.NewString()
			if task.CreatedAt.IsZero() {
				task.CreatedAt = now
			}
		}
		task.UpdatedAt = now
		used[task.ID] = struct{}{}
		out = append(out, task)
	}
	return out, nil
}

func parseDay(raw string) (time.Time, error) {
	parsed, err := timeutil.ParseDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return parsed, nil
}
