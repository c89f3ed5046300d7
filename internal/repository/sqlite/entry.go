package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wattshed/timesheet/pkg/models"
	"github.com/wattshed/timesheet/pkg/repository"
)

// entrySelect joins the optional creator and the referenced project so a
// single read yields everything the API serializes. Left joins keep entries
// readable even when a reference is missing.
const entrySelect = `SELECT e.id, e.user_id, e.project_id, e.start_time, e.end_time, e.notes,
	e.travel_morning, e.travel_afternoon, u.username, p.title, p.prefix, p.division
FROM time_entries e
LEFT JOIN users u ON u.id = e.user_id
LEFT JOIN projects p ON p.id = e.project_id`

func (r *SQLiteRepo) CreateEntry(ctx context.Context, e *models.TimeEntry) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("entry is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO time_entries (user_id, project_id, start_time, end_time, notes, travel_morning, travel_afternoon) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.ProjectID, formatTime(e.StartTime), formatTime(e.EndTime), e.Notes,
		boolToInt(e.TravelMorning), boolToInt(e.TravelAfternoon))
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetEntryByID(ctx context.Context, id int64) (*models.TimeEntry, error) {
	row := r.conn.QueryRow(ctx, entrySelect+` WHERE e.id = ?`, id)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return e, nil
}

func (r *SQLiteRepo) ListEntries(ctx context.Context, f repository.EntryFilter) ([]models.TimeEntry, error) {
	var conds []string
	var args []any
	if f.ProjectID != nil {
		conds = append(conds, "e.project_id = ?")
		args = append(args, *f.ProjectID)
	}
	if f.UserID != nil {
		conds = append(conds, "e.user_id = ?")
		args = append(args, *f.UserID)
	}
	// the date range is compared against the stored start time only
	if f.Start != nil {
		conds = append(conds, "e.start_time >= ?")
		args = append(args, formatTime(*f.Start))
	}
	if f.End != nil {
		conds = append(conds, "e.start_time <= ?")
		args = append(args, formatTime(*f.End))
	}

	q := entrySelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY e.start_time DESC"

	return r.queryEntries(ctx, q, args...)
}

func (r *SQLiteRepo) ListEntriesForExport(ctx context.Context, projectID *int64) ([]models.TimeEntry, error) {
	q := entrySelect
	var args []any
	if projectID != nil {
		q += " WHERE e.project_id = ?"
		args = append(args, *projectID)
	}
	q += " ORDER BY e.start_time ASC"

	return r.queryEntries(ctx, q, args...)
}

func (r *SQLiteRepo) UpdateEntry(ctx context.Context, e *models.TimeEntry) error {
	if e == nil {
		return fmt.Errorf("entry is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE time_entries SET user_id = ?, project_id = ?, start_time = ?, end_time = ?, notes = ?, travel_morning = ?, travel_afternoon = ? WHERE id = ?`,
		e.UserID, e.ProjectID, formatTime(e.StartTime), formatTime(e.EndTime), e.Notes,
		boolToInt(e.TravelMorning), boolToInt(e.TravelAfternoon), e.ID)
	return err
}

func (r *SQLiteRepo) DeleteEntry(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) queryEntries(ctx context.Context, q string, args ...any) ([]models.TimeEntry, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *e)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.TimeEntry, error) {
	var e models.TimeEntry
	var userID sql.NullInt64
	var start, end string
	var notes sql.NullString
	var morning, afternoon int
	var username, title, division sql.NullString
	var prefix sql.NullInt64

	if err := row.Scan(&e.ID, &userID, &e.ProjectID, &start, &end, &notes,
		&morning, &afternoon, &username, &title, &prefix, &division); err != nil {
		return nil, err
	}

	if userID.Valid {
		e.UserID = &userID.Int64
	}
	var err error
	if e.StartTime, err = parseTime(start); err != nil {
		return nil, fmt.Errorf("parse start_time %q: %w", start, err)
	}
	if e.EndTime, err = parseTime(end); err != nil {
		return nil, fmt.Errorf("parse end_time %q: %w", end, err)
	}
	if notes.Valid {
		e.Notes = notes.String
	}
	e.TravelMorning = morning != 0
	e.TravelAfternoon = afternoon != 0
	if username.Valid {
		e.CreatorUsername = &username.String
	}
	if title.Valid {
		e.ProjectTitle = &title.String
	}
	if prefix.Valid {
		e.ProjectPrefix = &prefix.Int64
	}
	if division.Valid {
		e.ProjectDivision = &division.String
	}

	return &e, nil
}
