// Package httpapi serves stored race results over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/internal/production"
)

type api struct {
	store  production.ResultStore
	logger zerolog.Logger
}

// NewRouter returns the results API:
//
//	GET /healthz
//	GET /results              ?completed=true, ?config=<version>
//	GET /results/{id}
//	GET /phases               phase transition table
func NewRouter(store production.ResultStore, logger zerolog.Logger) http.Handler {
	a := &api{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", a.healthz)
	r.Get("/phases", a.phases)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", a.listResults)
		r.Get("/{id}", a.getResult)
	})
	return r
}

func (a *api) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

func (a *api) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (a *api) phases(w http.ResponseWriter, r *http.Request) {
	data, err := production.ExportJSON()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (a *api) listResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	completed := q.Get("completed") == "true"
	version := q.Get("config")
	filter := func(res racecore.RaceResult) bool {
		if completed && !res.Completed {
			return false
		}
		return version == "" || res.ConfigVersion == version
	}

	results, err := a.store.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if results == nil {
		results = []racecore.RaceResult{}
	}
	a.writeJSON(w, http.StatusOK, results)
}

func (a *api) getResult(w http.ResponseWriter, r *http.Request) {
	res, err := a.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, production.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, production.ErrInvalidID):
		status = http.StatusBadRequest
	default:
		a.logger.Error().Err(err).Str("path", r.URL.Path).Msg("results request failed")
	}
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Warn().Err(err).Msg("write response")
	}
}
