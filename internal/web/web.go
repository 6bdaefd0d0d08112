package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/google/uuid"

	"partyplanner/internal/config"
	"partyplanner/internal/ics"
	appLog "partyplanner/internal/log"
	"partyplanner/internal/model"
	"partyplanner/internal/planner"
	"partyplanner/internal/view"
)

// Planner is the state owner the handlers drive.
type Planner interface {
	State() planner.State
	SelectParty(ctx context.Context, id model.PartyID)
	CreateParty(ctx context.Context, fields model.PartyFields)
	DeleteParty(ctx context.Context, id model.PartyID)
}

// Server serves the party planner page and the form endpoints that mutate
// it. Every mutating endpoint answers with a redirect to "/", which renders
// the whole page again from the current state.
type Server struct {
	cfg     *config.Config
	planner Planner
	mux     *http.ServeMux
	now     func() time.Time
}

//go:embed static
var embeddedStatic embed.FS

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, p Planner) *Server {
	s := &Server{
		cfg:     cfg,
		planner: p,
		mux:     http.NewServeMux(),
		now:     time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return requestLogMiddleware(s.mux)
}

// Run serves on cfg.Listen until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	appLog.Info("HTTP server stopped")
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /select", s.handleSelect)
	s.mux.HandleFunc("POST /parties", s.handleCreate)
	s.mux.HandleFunc("POST /delete", s.handleDelete)
	s.mux.HandleFunc("GET /parties.ics", s.handleCalendar)
	s.mux.Handle("GET /static/", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleIndex renders the full page from the current state.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := view.Render(&buf, s.planner.State()); err != nil {
		appLog.Error("render failed", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// handleSelect fetches the chosen party and makes it the selection.
//
// POST /select  id=<party id>
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if id := model.PartyID(r.PostFormValue("id")); id != "" {
		s.planner.SelectParty(detach(r), id)
	}
	redirectHome(w, r)
}

// handleCreate validates presence of all four fields and creates the party.
// The redirect renders an empty form whether or not the create succeeded.
//
// POST /parties  name, description, date, location
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields := model.PartyFields{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Location:    r.PostFormValue("location"),
	}.Trimmed()

	if fields.Complete() {
		s.planner.CreateParty(detach(r), fields)
	} else {
		appLog.Debug("create form incomplete; ignoring", "request_id", RequestID(r.Context()))
	}
	redirectHome(w, r)
}

// handleDelete deletes a party and clears the selection.
//
// POST /delete  id=<party id>
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if id := model.PartyID(r.PostFormValue("id")); id != "" {
		s.planner.DeleteParty(detach(r), id)
	}
	redirectHome(w, r)
}

// handleCalendar exports the current party list as iCalendar.
func (s *Server) handleCalendar(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := ics.WriteParties(&buf, s.planner.State().Parties, s.now()); err != nil {
		appLog.Error("ics export failed", err)
		http.Error(w, "failed to export calendar", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="parties.ics"`)
	_, _ = w.Write(buf.Bytes())
}

// staticFileServer serves the embedded stylesheet under /static/.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static assets not available", http.StatusServiceUnavailable)
		})
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// detach keeps request values but drops cancellation: once issued, a remote
// call runs to completion even if the browser goes away.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request by the logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogMiddleware tags each request with a uuid, echoes it in
// X-Request-Id and logs one line per request.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		appLog.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}
