// Package review aggregates time entries into the weekly review grid: a
// 7-day window ending on the team's designated end-of-week day, with hours
// summed per (day, project) pair and per-day totals.
package review

import (
	"fmt"
	"sort"
	"time"

	"github.com/wattshed/timesheet/internal/timesheet"
	"github.com/wattshed/timesheet/pkg/models"
)

// WeekEndDay is the designated end-of-week day; review weeks run
// Friday through Thursday.
const WeekEndDay = time.Thursday

// ProjectHours is one card in the grid: total hours on one project during
// one day.
type ProjectHours struct {
	Prefix int64   `json:"prefix"`
	Title  string  `json:"title"`
	Hours  float64 `json:"hours"`
}

// Week is the assembled review grid for one user and one week window.
type Week struct {
	Days   []string         `json:"days"`   // 7 calendar dates, oldest first
	Cells  [][]ProjectHours `json:"cells"`  // per-day cards, prefix ascending
	Totals []float64        `json:"totals"` // per-day hour totals
}

// WeekDays expands a week-ending date into its 7 calendar days, oldest first.
func WeekDays(weekEnd time.Time) [7]time.Time {
	var days [7]time.Time
	day := time.Date(weekEnd.Year(), weekEnd.Month(), weekEnd.Day(), 0, 0, 0, 0, weekEnd.Location())
	for i := 6; i >= 0; i-- {
		days[6-i] = day.AddDate(0, 0, -i)
	}
	return days
}

// BuildWeek groups entries into the week ending on weekEnd. The anchor date
// must fall on WeekEndDay. An entry lands in the day bucket whose calendar
// date matches the entry's stored start date; entries outside the window are
// ignored.
func BuildWeek(weekEnd time.Time, entries []models.TimeEntry) (*Week, error) {
	if weekEnd.Weekday() != WeekEndDay {
		return nil, fmt.Errorf("week ending date must be a %s", WeekEndDay)
	}

	days := WeekDays(weekEnd)
	byDay := make([]map[int64]*ProjectHours, 7)
	for i := range byDay {
		byDay[i] = make(map[int64]*ProjectHours)
	}
	totals := make([]float64, 7)

	for i := range entries {
		e := &entries[i]
		idx := dayIndex(days, e.StartTime)
		if idx < 0 {
			continue
		}
		// prefix is globally unique, so it keys the card
		var prefix int64
		title := ""
		if e.ProjectPrefix != nil {
			prefix = *e.ProjectPrefix
		}
		if e.ProjectTitle != nil {
			title = *e.ProjectTitle
		}
		card, ok := byDay[idx][prefix]
		if !ok {
			card = &ProjectHours{Prefix: prefix, Title: title}
			byDay[idx][prefix] = card
		}
		card.Hours += e.DurationHours()
		totals[idx] += e.DurationHours()
	}

	w := &Week{
		Days:   make([]string, 7),
		Cells:  make([][]ProjectHours, 7),
		Totals: totals,
	}
	for i, d := range days {
		w.Days[i] = d.Format(timesheet.LayoutDate)
		cells := make([]ProjectHours, 0, len(byDay[i]))
		for _, card := range byDay[i] {
			cells = append(cells, *card)
		}
		sort.Slice(cells, func(a, b int) bool { return cells[a].Prefix < cells[b].Prefix })
		w.Cells[i] = cells
	}
	return w, nil
}

func dayIndex(days [7]time.Time, at time.Time) int {
	y, m, d := at.Date()
	for i, day := range days {
		dy, dm, dd := day.Date()
		if y == dy && m == dm && d == dd {
			return i
		}
	}
	return -1
}
