package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/audio"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/monitor"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/webevents"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/repositories/journal"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/presentation/api/auth"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/tracing"
	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

var tracer = otel.Tracer("emergency-monitor/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, m monitor.Monitor, engine audio.Engine, j journal.Journal, we webevents.WebEvents) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetLoggerFromContext(ctx)

	authenticator, err := auth.NewAuthenticator(ctx, log, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authenticator: %w", err)
	}

	router.Route("/api/v0", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Route("/emergencies", func(r chi.Router) {
				r.Get("/", getEmergenciesHandler(log, m))
				r.Post("/refresh", refreshEmergenciesHandler(log, m))
				r.Patch("/{userID}", resolveEmergencyHandler(log, m))
			})

			r.Get("/sidebar", getSidebarHandler(log, m))
			r.Put("/sidebar", putSidebarHandler(log, m))

			r.Post("/audio/enable", enableAudioHandler(log, engine))
			r.Post("/audio/test", testAudioHandler(log, engine))

			r.Get("/stats", getStatsHandler(log, m))
			r.Get("/journal", getJournalHandler(log, j))
		})
	})

	if we != nil {
		router.Mount("/events", we.Server())
	}

	return router, nil
}

func getEmergenciesHandler(log zerolog.Logger, m monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		_, span := tracer.Start(r.Context(), "get-emergencies")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		respondWithJSON(w, http.StatusOK, emergenciesResponse{
			Users: m.Roster(),
			State: m.State(),
		})
	}
}

func refreshEmergenciesHandler(log zerolog.Logger, m monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "refresh-emergencies")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = m.Refresh(ctx)
		if err != nil {
			log.Error().Err(err).Msg("refresh failed")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		respondWithJSON(w, http.StatusOK, emergenciesResponse{
			Users: m.Roster(),
			State: m.State(),
		})
	}
}

func resolveEmergencyHandler(log zerolog.Logger, m monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "resolve-emergency")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			err = errors.New("no user id supplied")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		patch := struct {
			EmergencyAlarm *bool `json:"emergencyAlarm"`
		}{}
		err = json.Unmarshal(body, &patch)
		if err != nil {
			log.Error().Err(err).Msg("unable to unmarshal body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if patch.EmergencyAlarm == nil || *patch.EmergencyAlarm {
			err = errors.New("only emergencyAlarm:false is supported")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = m.Resolve(ctx, userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("unable to resolve emergency")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		respondWithJSON(w, http.StatusOK, emergenciesResponse{
			Users: m.Roster(),
			State: m.State(),
		})
	}
}

func getSidebarHandler(log zerolog.Logger, m monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		_, span := tracer.Start(r.Context(), "get-sidebar")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		respondWithJSON(w, http.StatusOK, sidebarState{Open: m.State().SidebarOpen})
	}
}

func putSidebarHandler(log zerolog.Logger, m monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		_, span := tracer.Start(r.Context(), "put-sidebar")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		var s sidebarState
		err = json.NewDecoder(r.Body).Decode(&s)
		if err != nil {
			log.Error().Err(err).Msg("unable to unmarshal body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m.SetSidebarOpen(s.Open)
		respondWithJSON(w, http.StatusOK, s)
	}
}

func enableAudioHandler(log zerolog.Logger, engine audio.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "enable-audio")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		enabled := engine.Enable(ctx)
		if !enabled {
			log.Warn().Msg("audio could not be enabled")
		}

		respondWithJSON(w, http.StatusOK, audioState{Enabled: enabled})
	}
}

func testAudioHandler(log zerolog.Logger, engine audio.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "test-audio")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		ok, reason := engine.TestPlay(ctx)

		response := audioTestResult{Played: ok, Enabled: engine.Enabled()}
		if reason != nil {
			response.Reason = reason.Error()
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}

func getStatsHandler(log zerolog.Logger, m monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-stats")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		stats, err := m.Stats(ctx)
		if err != nil {
			log.Error().Err(err).Msg("unable to compute stats")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, stats)
	}
}

func getJournalHandler(log zerolog.Logger, j journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-journal")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		limit := 50
		if q := r.URL.Query().Get("limit"); q != "" {
			limit, err = strconv.Atoi(q)
			if err != nil || limit < 1 {
				err = errors.New("limit must be a positive integer")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		var entries []types.JournalEntry

		if userID := r.URL.Query().Get("userID"); userID != "" {
			entries, err = j.GetByUserID(ctx, userID)
			if len(entries) > limit {
				entries = entries[:limit]
			}
		} else {
			entries, err = j.GetLatest(ctx, limit)
		}

		if err != nil {
			log.Error().Err(err).Msg("unable to read journal")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, journalResponse{Entries: entries})
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
