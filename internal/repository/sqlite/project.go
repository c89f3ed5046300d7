package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wattshed/timesheet/internal/timesheet"
	"github.com/wattshed/timesheet/pkg/models"
)

func (r *SQLiteRepo) CreateProject(ctx context.Context, p *models.Project) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("project is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO projects (title, prefix, division, is_active) VALUES (?, ?, ?, ?)`,
		p.Title, p.Prefix, p.Division, boolToInt(p.IsActive))
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, prefix, division, is_active FROM projects WHERE id = ?`, id)
	var p models.Project
	var active int
	if err := row.Scan(&p.ID, &p.Title, &p.Prefix, &p.Division, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	p.IsActive = active != 0

	return &p, nil
}

func (r *SQLiteRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, prefix, division, is_active FROM projects ORDER BY division ASC, prefix ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		var active int
		if err := rows.Scan(&p.ID, &p.Title, &p.Prefix, &p.Division, &active); err != nil {
			return nil, err
		}
		p.IsActive = active != 0

		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}

	// prefix is immutable after creation
	_, err := r.conn.Exec(ctx, `UPDATE projects SET title = ?, division = ?, is_active = ? WHERE id = ?`,
		p.Title, p.Division, boolToInt(p.IsActive), p.ID)
	return err
}

func (r *SQLiteRepo) SoftDeleteProject(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE projects SET is_active = 0 WHERE id = ?`, id)
	return err
}

// NextPrefix returns the next auto-range prefix for a division. Custom
// machine-ID prefixes live outside the division's window and are ignored by
// the window restriction in the query.
func (r *SQLiteRepo) NextPrefix(ctx context.Context, division string) (int64, error) {
	base, upper := timesheet.AutoRange(division)

	row := r.conn.QueryRow(ctx, `SELECT MAX(prefix) FROM projects WHERE division = ? AND prefix >= ? AND prefix < ?`,
		division, base, upper)
	var last sql.NullInt64
	if err := row.Scan(&last); err != nil {
		return 0, err
	}
	// the base acts as a defensive floor
	if !last.Valid || last.Int64 < base {
		return base, nil
	}

	return last.Int64 + 1, nil
}

func (r *SQLiteRepo) PrefixExists(ctx context.Context, prefix int64) (bool, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM projects WHERE prefix = ?`, prefix)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
