package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wattshed/timesheet/internal/timesheet"
	"github.com/wattshed/timesheet/pkg/models"
	"github.com/wattshed/timesheet/pkg/repository"
)

type EntriesHandler struct {
	entryRepo repository.EntryRepo
}

func NewEntriesHandler(er repository.EntryRepo) *EntriesHandler {
	return &EntriesHandler{entryRepo: er}
}

// entryResponse is the serialized entity shape shared by list, create and
// update responses. Times are the stored (travel-shifted) values.
type entryResponse struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"user_id"`
	CreatorUsername *string `json:"creator_username"`
	ProjectID       int64   `json:"project_id"`
	ProjectTitle    *string `json:"project_title"`
	ProjectPrefix   *int64  `json:"project_prefix"`
	ProjectDivision *string `json:"project_division"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Notes           string  `json:"notes"`
	DurationHours   float64 `json:"duration_hours"`
	TravelMorning   bool    `json:"travel_morning"`
	TravelAfternoon bool    `json:"travel_afternoon"`
}

func entryJSON(e *models.TimeEntry) entryResponse {
	return entryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		CreatorUsername: e.CreatorUsername,
		ProjectID:       e.ProjectID,
		ProjectTitle:    e.ProjectTitle,
		ProjectPrefix:   e.ProjectPrefix,
		ProjectDivision: e.ProjectDivision,
		StartTime:       e.StartTime.Format(timesheet.LayoutSecond),
		EndTime:         e.EndTime.Format(timesheet.LayoutSecond),
		Notes:           e.Notes,
		DurationHours:   math.Round(e.DurationHours()*1000) / 1000,
		TravelMorning:   e.TravelMorning,
		TravelAfternoon: e.TravelAfternoon,
	}
}

func (h *EntriesHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repository.EntryFilter

	if s := q.Get("project_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeError(w, "invalid project_id", http.StatusBadRequest)
			return
		}
		filter.ProjectID = &id
	}
	if s := q.Get("user_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeError(w, "invalid user_id", http.StatusBadRequest)
			return
		}
		filter.UserID = &id
	}
	// inclusive calendar-date range against the stored start time
	if s := q.Get("start"); s != "" {
		day, err := timesheet.ParseDate(s)
		if err != nil {
			writeError(w, "invalid start date", http.StatusBadRequest)
			return
		}
		filter.Start = &day
	}
	if s := q.Get("end"); s != "" {
		day, err := timesheet.ParseDate(s)
		if err != nil {
			writeError(w, "invalid end date", http.StatusBadRequest)
			return
		}
		endOfDay := day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filter.End = &endOfDay
	}

	entries, err := h.entryRepo.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, entryJSON(&entries[i]))
	}

	writeJSON(w, out, http.StatusOK)
}

type createEntryRequest struct {
	ProjectID       int64  `json:"project_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Notes           string `json:"notes"`
	TravelMorning   bool   `json:"travel_morning"`
	TravelAfternoon bool   `json:"travel_afternoon"`
}

func (h *EntriesHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if err := validateShape(ctx, createEntrySchema, body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req createEntryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	rawStart, err := timesheet.ParseDateTime(req.StartTime)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rawEnd, err := timesheet.ParseDateTime(req.EndTime)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// what is saved is the shifted span, not what the user typed
	start, end := timesheet.ApplyTravelShift(rawStart, rawEnd, req.TravelMorning, req.TravelAfternoon)
	if !timesheet.ValidSpan(start, end) {
		writeError(w, "end time must be after start time", http.StatusBadRequest)
		return
	}

	entry := &models.TimeEntry{
		ProjectID:       req.ProjectID,
		StartTime:       start,
		EndTime:         end,
		Notes:           strings.TrimSpace(req.Notes),
		TravelMorning:   req.TravelMorning,
		TravelAfternoon: req.TravelAfternoon,
	}
	if userID, ok := sessionUserID(r); ok {
		entry.UserID = &userID
	}

	id, err := h.entryRepo.CreateEntry(ctx, entry)
	if err != nil {
		writeError(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	created, err := h.entryRepo.GetEntryByID(ctx, id)
	if err != nil || created == nil {
		writeError(w, "failed to load created entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, entryJSON(created), http.StatusCreated)
}

type updateEntryRequest struct {
	ProjectID       *int64  `json:"project_id"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	Notes           *string `json:"notes"`
	TravelMorning   *bool   `json:"travel_morning"`
	TravelAfternoon *bool   `json:"travel_afternoon"`
}

// UpdateEntry applies a partial update. Travel flags are applied before the
// shift is recomputed, so a flag toggle sent together with new times uses the
// new flag state. Times omitted from the request fall back to the currently
// stored values, which are then re-shifted against the new flag state.
func (h *EntriesHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	entry, err := h.entryRepo.GetEntryByID(ctx, id)
	if err != nil {
		writeError(w, "failed to load entry", http.StatusInternalServerError)
		return
	}
	if entry == nil {
		writeError(w, "entry not found", http.StatusNotFound)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.ProjectID != nil {
		entry.ProjectID = *req.ProjectID
	}
	if req.Notes != nil {
		entry.Notes = strings.TrimSpace(*req.Notes)
	}
	// flags first, so the re-shift below sees the new state
	if req.TravelMorning != nil {
		entry.TravelMorning = *req.TravelMorning
	}
	if req.TravelAfternoon != nil {
		entry.TravelAfternoon = *req.TravelAfternoon
	}

	// incoming times are raw user selections; missing ones default to the
	// currently stored values
	start := entry.StartTime
	end := entry.EndTime
	if req.StartTime != nil {
		if start, err = timesheet.ParseDateTime(*req.StartTime); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.EndTime != nil {
		if end, err = timesheet.ParseDateTime(*req.EndTime); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	start, end = timesheet.ApplyTravelShift(start, end, entry.TravelMorning, entry.TravelAfternoon)
	if !timesheet.ValidSpan(start, end) {
		writeError(w, "end time must be after start time", http.StatusBadRequest)
		return
	}
	entry.StartTime = start
	entry.EndTime = end

	if err := h.entryRepo.UpdateEntry(ctx, entry); err != nil {
		writeError(w, "failed to update entry", http.StatusInternalServerError)
		return
	}

	updated, err := h.entryRepo.GetEntryByID(ctx, id)
	if err != nil || updated == nil {
		writeError(w, "failed to load updated entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, entryJSON(updated), http.StatusOK)
}

func (h *EntriesHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	entry, err := h.entryRepo.GetEntryByID(ctx, id)
	if err != nil {
		writeError(w, "failed to load entry", http.StatusInternalServerError)
		return
	}
	if entry == nil {
		writeError(w, "entry not found", http.StatusNotFound)
		return
	}

	if err := h.entryRepo.DeleteEntry(ctx, id); err != nil {
		writeError(w, "failed to delete entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
