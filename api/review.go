package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wattshed/timesheet/internal/review"
	"github.com/wattshed/timesheet/internal/timesheet"
	"github.com/wattshed/timesheet/pkg/repository"
)

type ReviewHandler struct {
	entryRepo repository.EntryRepo
}

func NewReviewHandler(er repository.EntryRepo) *ReviewHandler {
	return &ReviewHandler{entryRepo: er}
}

// WeekGrid assembles the weekly review grid for one user: the 7-day window
// ending on the given Thursday, hours grouped per day and project.
func (h *ReviewHandler) WeekGrid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userStr := q.Get("user_id")
	if userStr == "" {
		writeError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	userID, err := strconv.ParseInt(userStr, 10, 64)
	if err != nil {
		writeError(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	weekEnd, err := timesheet.ParseDate(q.Get("week_ending"))
	if err != nil {
		writeError(w, "invalid week_ending date", http.StatusBadRequest)
		return
	}
	if weekEnd.Weekday() != review.WeekEndDay {
		writeError(w, "week_ending must fall on a "+review.WeekEndDay.String(), http.StatusBadRequest)
		return
	}

	days := review.WeekDays(weekEnd)
	start := days[0]
	end := days[6].Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	entries, err := h.entryRepo.ListEntries(r.Context(), repository.EntryFilter{
		UserID: &userID,
		Start:  &start,
		End:    &end,
	})
	if err != nil {
		writeError(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	grid, err := review.BuildWeek(weekEnd, entries)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, grid, http.StatusOK)
}
