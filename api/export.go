package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/wattshed/timesheet/pkg/models"
	"github.com/wattshed/timesheet/pkg/repository"
)

type ExportHandler struct {
	entryRepo repository.EntryRepo
}

func NewExportHandler(er repository.EntryRepo) *ExportHandler {
	return &ExportHandler{entryRepo: er}
}

var exportHeader = []string{
	"entry_id",
	"username",
	"project_prefix",
	"project_title",
	"project_division",
	"start_time",
	"end_time",
	"duration_hours",
	"notes",
	"travel_morning",
	"travel_afternoon",
}

// ExportCSV streams all entries, optionally restricted to one project,
// ascending by start time. Join fields that are absent render as empty
// columns so a dangling project reference never breaks the export.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var projectID *int64
	if s := r.URL.Query().Get("project_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeError(w, "invalid project_id", http.StatusBadRequest)
			return
		}
		projectID = &id
	}

	entries, err := h.entryRepo.ListEntriesForExport(r.Context(), projectID)
	if err != nil {
		writeError(w, "failed to export entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="time_entries.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		logger.Error("write csv header", slog.Any("err", err))
		return
	}
	for i := range entries {
		if err := cw.Write(exportRow(&entries[i])); err != nil {
			logger.Error("write csv row", slog.Any("err", err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error("flush csv", slog.Any("err", err))
	}
}

func exportRow(e *models.TimeEntry) []string {
	username := ""
	if e.CreatorUsername != nil {
		username = *e.CreatorUsername
	}
	prefix := ""
	if e.ProjectPrefix != nil {
		prefix = strconv.FormatInt(*e.ProjectPrefix, 10)
	}
	title := ""
	if e.ProjectTitle != nil {
		title = *e.ProjectTitle
	}
	division := ""
	if e.ProjectDivision != nil {
		division = *e.ProjectDivision
	}

	return []string{
		strconv.FormatInt(e.ID, 10),
		username,
		prefix,
		title,
		division,
		e.StartTime.Format("2006-01-02 15:04"),
		e.EndTime.Format("2006-01-02 15:04"),
		fmt.Sprintf("%.3f", e.DurationHours()),
		e.Notes,
		boolFlag(e.TravelMorning),
		boolFlag(e.TravelAfternoon),
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
