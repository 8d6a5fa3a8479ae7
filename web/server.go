// Package web serves a localhost-only single-user status page; it
// intentionally has no auth in this mode.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gofill/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store  *storage.SQLiteStore
	logger *zap.Logger
	mux    *http.ServeMux
}

type runRowView struct {
	ID        string
	Started   string
	Template  string
	Source    string
	OutputDir string
	Filled    int
	Invalid   int
	Note      string
}

type runsPageView struct {
	Title        string
	Rows         []runRowView
	TotalFilled  int
	TotalInvalid int
}

type runPageView struct {
	Title string
	Run   runRowView
}

func NewServer(store *storage.SQLiteStore, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &Server{store: store, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleRuns)
	mux.HandleFunc("GET /run/{id}", server.handleRun)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit (expected a positive number)", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.logger.Error("list fill runs", zap.Error(err))
		http.Error(w, fmt.Sprintf("list fill runs: %v", err), http.StatusInternalServerError)
		return
	}

	view := runsPageView{
		Title: "gofill - fill runs",
		Rows:  make([]runRowView, 0, len(runs)),
	}
	for _, run := range runs {
		view.Rows = append(view.Rows, runRow(run))
		view.TotalFilled += run.Filled
		view.TotalInvalid += run.Invalid
	}

	if err := renderTemplate(w, "runs.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	run, err := s.store.GetRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		http.Error(w, "fill run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("get fill run", zap.String("id", id), zap.Error(err))
		http.Error(w, fmt.Sprintf("get fill run: %v", err), http.StatusInternalServerError)
		return
	}

	view := runPageView{
		Title: "gofill - run " + run.ID,
		Run:   runRow(run),
	}
	if err := renderTemplate(w, "run.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func runRow(run storage.FillRun) runRowView {
	return runRowView{
		ID:        run.ID,
		Started:   run.StartedAt.Local().Format("2006-01-02 15:04"),
		Template:  run.Template,
		Source:    run.Source,
		OutputDir: run.OutputDir,
		Filled:    run.Filled,
		Invalid:   run.Invalid,
		Note:      run.Note,
	}
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}
