package sqlite

import (
	"time"

	"log/slog"

	"github.com/wattshed/timesheet/internal/db"
	"github.com/wattshed/timesheet/internal/timesheet"
	"github.com/wattshed/timesheet/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.ProjectRepo = (*SQLiteRepo)(nil)
var _ repository.EntryRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

// Timestamps are persisted as naive local text so that string comparison in
// SQL matches chronological order.
func formatTime(t time.Time) string {
	return t.Format(timesheet.LayoutSecond)
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(timesheet.LayoutSecond, s, time.Local)
}
