package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/wattshed/timesheet/internal/timesheet"
	"github.com/wattshed/timesheet/pkg/models"
	"github.com/wattshed/timesheet/pkg/repository"
)

type ProjectsHandler struct {
	projectRepo repository.ProjectRepo
}

func NewProjectsHandler(pr repository.ProjectRepo) *ProjectsHandler {
	return &ProjectsHandler{projectRepo: pr}
}

func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.ListProjects(r.Context())
	if err != nil {
		writeError(w, "failed to list projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, projects, http.StatusOK)
}

type createProjectRequest struct {
	Title    string           `json:"title"`
	Division string           `json:"division"`
	Prefix   *json.RawMessage `json:"prefix"`
}

func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if err := validateShape(ctx, createProjectSchema, body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req createProjectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(req.Title)
	division := strings.TrimSpace(req.Division)
	if division == "" {
		division = timesheet.DivisionMelbournePower
	}
	if !timesheet.ValidDivision(division) {
		writeError(w, "division must be one of "+strings.Join(timesheet.Divisions, ", "), http.StatusBadRequest)
		return
	}
	if title == "" {
		writeError(w, "title is required", http.StatusBadRequest)
		return
	}

	var prefix int64
	hasCustom := false
	if req.Prefix != nil {
		raw := strings.Trim(strings.TrimSpace(string(*req.Prefix)), `"`)
		if raw != "" && raw != "null" {
			prefix, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, "prefix must be an integer", http.StatusBadRequest)
				return
			}
			hasCustom = true
		}
	}

	if hasCustom {
		if err := timesheet.ValidateCustomPrefix(division, prefix); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		exists, err := h.projectRepo.PrefixExists(ctx, prefix)
		if err != nil {
			writeError(w, "failed to check prefix", http.StatusInternalServerError)
			return
		}
		if exists {
			writeError(w, "prefix "+strconv.FormatInt(prefix, 10)+" already exists", http.StatusBadRequest)
			return
		}
	} else {
		prefix, err = h.projectRepo.NextPrefix(ctx, division)
		if err != nil {
			writeError(w, "failed to allocate prefix", http.StatusInternalServerError)
			return
		}
	}

	p := &models.Project{Title: title, Prefix: prefix, Division: division, IsActive: true}
	// the UNIQUE index on prefix is the backstop for concurrent creates that
	// both pass the existence pre-check
	id, err := h.projectRepo.CreateProject(ctx, p)
	if err != nil {
		writeError(w, "failed to create project", http.StatusInternalServerError)
		return
	}
	p.ID = id

	writeJSON(w, p, http.StatusCreated)
}

type updateProjectRequest struct {
	Title    *string `json:"title"`
	Division *string `json:"division"`
	IsActive *bool   `json:"is_active"`
}

func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "invalid project id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	p, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeError(w, "failed to load project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "project not found", http.StatusNotFound)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	// any subset of title/division/is_active; prefix is never mutable
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Division != nil {
		if !timesheet.ValidDivision(*req.Division) {
			writeError(w, "division must be one of "+strings.Join(timesheet.Divisions, ", "), http.StatusBadRequest)
			return
		}
		p.Division = *req.Division
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.projectRepo.UpdateProject(ctx, p); err != nil {
		writeError(w, "failed to update project", http.StatusInternalServerError)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

// DeleteProject soft-deletes: existing time entries keep referencing the
// project, it just stops being offered for new entries. Deleting an already
// inactive project is a no-op.
func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "invalid project id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	p, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeError(w, "failed to load project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "project not found", http.StatusNotFound)
		return
	}

	if err := h.projectRepo.SoftDeleteProject(ctx, id); err != nil {
		writeError(w, "failed to delete project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
