package api_test

import (
	"math"
	"net/http"
	"strings"
	"testing"
)

type weekJSON struct {
	Days  []string `json:"days"`
	Cells [][]struct {
		Prefix int64   `json:"prefix"`
		Title  string  `json:"title"`
		Hours  float64 `json:"hours"`
	} `json:"cells"`
	Totals []float64 `json:"totals"`
}

func TestReviewWeekGrid(t *testing.T) {
	s := newTestServer(t)
	p1 := createProject(t, s, map[string]any{"title": "Grid upgrade", "division": "Melbourne Power"})
	p2 := createProject(t, s, map[string]any{"title": "Bottling line", "division": "Liquid Pack"})

	// 2026-03-05 is a Thursday; its window runs Friday 2026-02-27 through
	// Thursday 2026-03-05.
	createEntry(t, s, map[string]any{"project_id": p1.ID, "start_time": "2026-02-27T08:00", "end_time": "2026-02-27T12:00"})
	createEntry(t, s, map[string]any{"project_id": p1.ID, "start_time": "2026-03-02T08:00", "end_time": "2026-03-02T10:00"})
	createEntry(t, s, map[string]any{"project_id": p2.ID, "start_time": "2026-03-02T10:00", "end_time": "2026-03-02T13:30"})
	// outside the window
	createEntry(t, s, map[string]any{"project_id": p1.ID, "start_time": "2026-03-06T08:00", "end_time": "2026-03-06T12:00"})

	var week weekJSON
	if status := s.doJSON(http.MethodGet, "/api/review?user_id=1&week_ending=2026-03-05", nil, &week); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if len(week.Days) != 7 || week.Days[0] != "2026-02-27" || week.Days[6] != "2026-03-05" {
		t.Fatalf("unexpected days: %v", week.Days)
	}

	// Friday holds the first entry
	if len(week.Cells[0]) != 1 || week.Cells[0][0].Prefix != p1.Prefix || week.Cells[0][0].Hours != 4 {
		t.Fatalf("unexpected Friday cards: %+v", week.Cells[0])
	}
	// Monday (index 3) has both projects, prefix ascending
	monday := week.Cells[3]
	if len(monday) != 2 || monday[0].Prefix != p1.Prefix || monday[1].Prefix != p2.Prefix {
		t.Fatalf("unexpected Monday cards: %+v", monday)
	}
	if monday[0].Hours != 2 || monday[1].Hours != 3.5 {
		t.Fatalf("unexpected Monday hours: %+v", monday)
	}
	if math.Abs(week.Totals[3]-5.5) > 1e-9 || week.Totals[0] != 4 {
		t.Fatalf("unexpected totals: %v", week.Totals)
	}
	// The out-of-window entry contributes nowhere
	var sum float64
	for _, tot := range week.Totals {
		sum += tot
	}
	if math.Abs(sum-9.5) > 1e-9 {
		t.Fatalf("expected 9.5 total hours in window, got %v", sum)
	}
}

func TestReviewWeekGridValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{name: "MissingUser", query: "week_ending=2026-03-05", wantMsg: "user_id is required"},
		{name: "BadUser", query: "user_id=abc&week_ending=2026-03-05", wantMsg: "invalid user_id"},
		{name: "BadDate", query: "user_id=1&week_ending=someday", wantMsg: "invalid week_ending date"},
		{name: "NotThursday", query: "user_id=1&week_ending=2026-03-04", wantMsg: "must fall on a Thursday"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := s.do(http.MethodGet, "/api/review?"+c.query, nil)
			if res.StatusCode != http.StatusBadRequest {
				res.Body.Close()
				t.Fatalf("expected 400, got %d", res.StatusCode)
			}
			if msg := errorMessage(t, res); !strings.Contains(msg, c.wantMsg) {
				t.Fatalf("expected error containing %q, got %q", c.wantMsg, msg)
			}
		})
	}

	// An empty window still returns the full grid shape
	var week weekJSON
	if status := s.doJSON(http.MethodGet, "/api/review?user_id=1&week_ending=2026-03-05", nil, &week); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(week.Days) != 7 || len(week.Cells) != 7 || len(week.Totals) != 7 {
		t.Fatalf("unexpected empty grid shape: %+v", week)
	}
	for i, cards := range week.Cells {
		if len(cards) != 0 || week.Totals[i] != 0 {
			t.Fatalf("expected empty day %d, got %+v", i, cards)
		}
	}
}
