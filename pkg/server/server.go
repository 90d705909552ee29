// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout  item document in, layout document out
//	GET  /healthz    liveness and build version
//	GET  /metrics    Prometheus metrics, when a handler is configured
//
// A layout request is an item document with optional param overrides:
//
//	{"items": [...], "params": {"label_margin": 12}, "refresh": false}
//
// Failures are reported as {"code": "INVALID_ITEM", "message": "..."} with
// a status derived from the error code.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/timelane/pkg/buildinfo"
	terrors "github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/io"
	"github.com/matzehuels/timelane/pkg/pipeline"
	"github.com/matzehuels/timelane/pkg/timeline"
)

// maxBodyBytes bounds a layout request body.
const maxBodyBytes = 8 << 20

// Config configures a Server.
type Config struct {
	Addr        string
	ReadTimeout time.Duration
	// Params are the defaults request overrides apply to.
	Params timeline.Params
	// Metrics serves /metrics; nil leaves the route unregistered.
	Metrics http.Handler
}

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New builds the router. A zero Params in cfg selects the defaults.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Params == (timeline.Params{}) {
		cfg.Params = timeline.DefaultParams()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	s := &Server{runner: runner, logger: logger, cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type layoutRequest struct {
	io.Document
	Params  json.RawMessage `json:"params,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, terrors.Wrap(terrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	p := s.cfg.Params
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			s.writeError(w, r, terrors.Wrap(terrors.ErrCodeInvalidParams, err, "decode params"))
			return
		}
	}

	logger := s.logger.With("request_id", RequestIDFromContext(r.Context()))
	res, err := s.runner.LayoutDocument(r.Context(), req.Document, p, pipeline.Options{
		Refresh: req.Refresh,
		Logger:  logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	if err := io.WriteLayout(w, res.Document); err != nil {
		logger.Error("write response", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

type errorBody struct {
	Code    terrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := terrors.HTTPStatus(err)
	code := terrors.GetCode(err)
	msg := terrors.UserMessage(err)
	if code == "" {
		code = terrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
		if code == terrors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
