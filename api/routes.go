package api

import (
	"github.com/gorilla/mux"
	"github.com/wattshed/timesheet/internal/config"
	"github.com/wattshed/timesheet/internal/db"
	"github.com/wattshed/timesheet/internal/repository/sqlite"
	"github.com/wattshed/timesheet/web"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.SessionSecret, cfg.SessionDuration)
	usersHandler := NewUsersHandler(repo)
	projectsHandler := NewProjectsHandler(repo)
	entriesHandler := NewEntriesHandler(repo)
	exportHandler := NewExportHandler(repo)
	reviewHandler := NewReviewHandler(repo)

	pages, err := web.New()
	if err != nil {
		return nil, err
	}

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/login", pages.Login).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	// Protected pages: unauthenticated requests bounce to the login form
	site := r.NewRoute().Subrouter()
	site.Use(SessionAuthMiddleware(cfg.SessionSecret, true))
	site.HandleFunc("/", pages.Home).Methods("GET")
	site.HandleFunc("/app", pages.App).Methods("GET")
	site.HandleFunc("/projects", pages.Projects).Methods("GET")
	site.HandleFunc("/review", pages.Review).Methods("GET")
	site.HandleFunc("/admin", pages.Admin).Methods("GET")
	site.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Protected API: unauthenticated requests get a 401
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(SessionAuthMiddleware(cfg.SessionSecret, false))
	apiRouter.HandleFunc("/users", usersHandler.ListUsers).Methods("GET")
	apiRouter.HandleFunc("/projects", projectsHandler.ListProjects).Methods("GET")
	apiRouter.HandleFunc("/projects", projectsHandler.CreateProject).Methods("POST")
	apiRouter.HandleFunc("/projects/{id:[0-9]+}", projectsHandler.UpdateProject).Methods("PUT")
	apiRouter.HandleFunc("/projects/{id:[0-9]+}", projectsHandler.DeleteProject).Methods("DELETE")
	apiRouter.HandleFunc("/entries", entriesHandler.ListEntries).Methods("GET")
	apiRouter.HandleFunc("/entries", entriesHandler.CreateEntry).Methods("POST")
	apiRouter.HandleFunc("/entries/{id:[0-9]+}", entriesHandler.UpdateEntry).Methods("PUT")
	apiRouter.HandleFunc("/entries/{id:[0-9]+}", entriesHandler.DeleteEntry).Methods("DELETE")
	apiRouter.HandleFunc("/export", exportHandler.ExportCSV).Methods("GET")
	apiRouter.HandleFunc("/review", reviewHandler.WeekGrid).Methods("GET")

	return r, nil
}
