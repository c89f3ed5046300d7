package models

import "time"

// Domain models matching the database schema in db/migrations.

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Project struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Prefix   int64  `json:"prefix" db:"prefix"`
	Division string `json:"division" db:"division"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// TimeEntry holds the stored (travel-shifted) span. Raw user-entered times
// are reconstructed by inverting the shift when an entry is redisplayed for
// editing; they are never persisted.
type TimeEntry struct {
	ID              int64     `json:"id" db:"id"`
	UserID          *int64    `json:"user_id" db:"user_id"`
	ProjectID       int64     `json:"project_id" db:"project_id"`
	StartTime       time.Time `json:"-" db:"start_time"`
	EndTime         time.Time `json:"-" db:"end_time"`
	Notes           string    `json:"notes" db:"notes"`
	TravelMorning   bool      `json:"travel_morning" db:"travel_morning"`
	TravelAfternoon bool      `json:"travel_afternoon" db:"travel_afternoon"`

	// Joined display fields, populated by list/get queries.
	CreatorUsername *string `json:"creator_username"`
	ProjectTitle    *string `json:"project_title"`
	ProjectPrefix   *int64  `json:"project_prefix"`
	ProjectDivision *string `json:"project_division"`
}

// DurationHours is always derived from the stored timestamps, never persisted.
func (e *TimeEntry) DurationHours() float64 {
	return e.EndTime.Sub(e.StartTime).Seconds() / 3600.0
}
