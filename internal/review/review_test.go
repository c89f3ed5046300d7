package review_test

import (
	"testing"
	"time"

	"github.com/wattshed/timesheet/internal/review"
	"github.com/wattshed/timesheet/pkg/models"
)

func entry(t *testing.T, prefix int64, title, start, end string) models.TimeEntry {
	t.Helper()
	s, err := time.ParseInLocation("2006-01-02T15:04", start, time.Local)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := time.ParseInLocation("2006-01-02T15:04", end, time.Local)
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	return models.TimeEntry{
		StartTime:     s,
		EndTime:       e,
		ProjectPrefix: &prefix,
		ProjectTitle:  &title,
	}
}

func TestWeekDays(t *testing.T) {
	// 2024-01-25 is a Thursday
	weekEnd := time.Date(2024, 1, 25, 0, 0, 0, 0, time.Local)
	days := review.WeekDays(weekEnd)
	if days[0].Weekday() != time.Friday {
		t.Fatalf("window should start on Friday, got %s", days[0].Weekday())
	}
	if days[0].Format("2006-01-02") != "2024-01-19" {
		t.Fatalf("first day: got %s", days[0].Format("2006-01-02"))
	}
	if days[6].Format("2006-01-02") != "2024-01-25" {
		t.Fatalf("last day: got %s", days[6].Format("2006-01-02"))
	}
}

func TestBuildWeek_RejectsNonThursdayAnchor(t *testing.T) {
	// 2024-01-24 is a Wednesday
	weekEnd := time.Date(2024, 1, 24, 0, 0, 0, 0, time.Local)
	if _, err := review.BuildWeek(weekEnd, nil); err == nil {
		t.Fatalf("expected error for non-Thursday anchor")
	}
}

func TestBuildWeek_GroupsByDayAndProject(t *testing.T) {
	weekEnd := time.Date(2024, 1, 25, 0, 0, 0, 0, time.Local)
	entries := []models.TimeEntry{
		// Friday 2024-01-19: two entries on 1000, one on 2001
		entry(t, 1000, "Site A", "2024-01-19T06:00", "2024-01-19T10:00"),
		entry(t, 1000, "Site A", "2024-01-19T11:00", "2024-01-19T13:30"),
		entry(t, 2001, "Pack Line", "2024-01-19T14:00", "2024-01-19T16:00"),
		// Thursday 2024-01-25
		entry(t, 2001, "Pack Line", "2024-01-25T08:00", "2024-01-25T09:15"),
		// outside the window, ignored
		entry(t, 1000, "Site A", "2024-01-26T06:00", "2024-01-26T10:00"),
	}

	w, err := review.BuildWeek(weekEnd, entries)
	if err != nil {
		t.Fatalf("BuildWeek: %v", err)
	}

	if len(w.Days) != 7 || len(w.Cells) != 7 || len(w.Totals) != 7 {
		t.Fatalf("expected 7 columns, got days=%d cells=%d totals=%d", len(w.Days), len(w.Cells), len(w.Totals))
	}

	fri := w.Cells[0]
	if len(fri) != 2 {
		t.Fatalf("expected 2 project cards on Friday, got %d", len(fri))
	}
	if fri[0].Prefix != 1000 || fri[0].Hours != 6.5 {
		t.Fatalf("Friday 1000 card: got prefix=%d hours=%v", fri[0].Prefix, fri[0].Hours)
	}
	if fri[1].Prefix != 2001 || fri[1].Hours != 2.0 {
		t.Fatalf("Friday 2001 card: got prefix=%d hours=%v", fri[1].Prefix, fri[1].Hours)
	}
	if w.Totals[0] != 8.5 {
		t.Fatalf("Friday total: got %v", w.Totals[0])
	}

	thu := w.Cells[6]
	if len(thu) != 1 || thu[0].Hours != 1.25 {
		t.Fatalf("Thursday: got %+v", thu)
	}

	// empty middle days stay empty with zero totals
	for i := 1; i < 6; i++ {
		if len(w.Cells[i]) != 0 || w.Totals[i] != 0 {
			t.Fatalf("day %d should be empty, got cells=%d total=%v", i, len(w.Cells[i]), w.Totals[i])
		}
	}
}
