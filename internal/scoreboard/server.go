// Package scoreboard serves the remote high-score board over HTTP and
// provides the client the game uses to talk to it.
package scoreboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-2048/internal/scores"
)

// MaxLimit caps GET /scores.
const MaxLimit = 100

const maxBodyBytes = 4 << 10

// Store is the persistence the server needs. *storage.Store satisfies it.
type Store interface {
	SaveScore(ctx context.Context, rec scores.Record) (id int64, created bool, err error)
	Top(ctx context.Context, limit int) ([]scores.Record, error)
}

// Options configures a Server.
type Options struct {
	// Secret enables bearer-token checks on POST /scores when non-empty.
	Secret string
	// RequestTimeout bounds handler time. Defaults to 10s.
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// Server bundles the router and the score store.
type Server struct {
	r      *chi.Mux
	store  Store
	secret []byte
	logger *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(store Store, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		r:      chi.NewRouter(),
		store:  store,
		logger: logger,
	}
	if opts.Secret != "" {
		s.secret = []byte(opts.Secret)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.RequestTimeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/scores", func(r chi.Router) {
		r.Get("/", s.handleTop)
		r.Post("/", s.handleSubmit)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

// Handler exposes the router (useful for tests and embedding).
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting score board", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request once it has been served.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

type submitReq struct {
	Nickname  string `json:"nickname"`
	Score     int    `json:"score"`
	SessionID string `json:"session_id"`
}

type submitRes struct {
	ID int64 `json:"id"`
}

// rankEntry is the public shape of a ranked record; session IDs stay private.
type rankEntry struct {
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec := scores.Record{
		Nickname:  strings.TrimSpace(req.Nickname),
		Score:     req.Score,
		SessionID: req.SessionID,
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.secret != nil {
		claims, err := ParseToken(s.secret, bearerToken(r.Header.Get("Authorization")))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if strings.TrimSpace(claims.Nickname) != rec.Nickname {
			writeError(w, http.StatusUnauthorized, "token does not match nickname")
			return
		}
	}

	id, created, err := s.store.SaveScore(r.Context(), rec)
	if errors.Is(err, scores.ErrInvalidRecord) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("save score failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save score")
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, submitRes{ID: id})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := scores.DefaultRankingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLimit)
	}

	records, err := s.store.Top(r.Context(), limit)
	if err != nil {
		s.logger.Error("query ranking failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scores")
		return
	}

	out := make([]rankEntry, len(records))
	for i, rec := range records {
		out[i] = rankEntry{Nickname: rec.Nickname, Score: rec.Score, CreatedAt: rec.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorRes struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorRes{Error: msg})
}
