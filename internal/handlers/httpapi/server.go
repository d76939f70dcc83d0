package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/services/match"
)

const (
	defaultWriteTimeout = 5 * time.Second
	requestTimeout      = 10 * time.Second
)

// Config wires the status API
type Config struct {
	Addr    string
	Matches match.Service
	Feed    *Feed
	Logger  logrus.FieldLogger

	// OriginPatterns are the extra origins allowed to open the live feed
	OriginPatterns []string

	// WriteTimeout bounds a single websocket frame write
	WriteTimeout time.Duration
}

// Server exposes running matches over HTTP and streams their lines over websockets
type Server struct {
	cfg  *Config
	log  logrus.FieldLogger
	http *http.Server
}

func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Matches == nil {
		return nil, errors.New("match service cannot be nil")
	}
	if cfg.Feed == nil {
		return nil, errors.New("feed cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	c := *cfg
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}

	s := &Server{cfg: &c, log: c.Logger.WithField("component", "http")}
	s.http = &http.Server{
		Addr:              c.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/feed", s.handleFeed)
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", s.handleListMatches)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetMatch)
			r.Get("/feed", s.handleFeed)
		})
	})
	return r
}

// ListenAndServe blocks until Shutdown; it returns nil after a clean shutdown
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.cfg.Addr).Info("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Debug("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"subscribers": s.cfg.Feed.Subscribers(),
	})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	out, err := s.cfg.Matches.ListMatches(ctx, &match.ListMatchesInput{})
	if err != nil {
		s.log.WithError(err).Error("failed to list matches")
		writeError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": out.Matches})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	out, err := s.cfg.Matches.GetMatchStatus(ctx, &match.GetMatchStatusInput{MatchID: id})
	switch {
	case errors.Is(err, match.ErrMatchNotFound), errors.Is(err, match.ErrSessionClosed):
		writeError(w, http.StatusNotFound, "match is not running")
		return
	case err != nil:
		s.log.WithError(err).WithField("match_id", id).Error("failed to read match")
		writeError(w, http.StatusInternalServerError, "failed to read match")
		return
	}
	writeJSON(w, http.StatusOK, out.Status)
}

// handleFeed streams lines of one match, or of every match on /feed
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if matchID != "" {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		_, err := s.cfg.Matches.GetMatchStatus(ctx, &match.GetMatchStatusInput{MatchID: matchID})
		cancel()
		if err != nil {
			writeError(w, http.StatusNotFound, "match is not running")
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.OriginPatterns,
	})
	if err != nil {
		s.log.WithError(err).Debug("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	id, events, unsubscribe := s.cfg.Feed.Subscribe(matchID)
	defer unsubscribe()

	log := s.log.WithFields(logrus.Fields{"subscriber": id, "match_id": matchID})
	log.Debug("feed subscriber joined")

	// the feed is one way; CloseRead handles control frames and reports the peer leaving
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			log.Debug("feed subscriber left")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				log.WithError(err).Error("failed to encode feed event")
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
			err = conn.Write(wctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				log.WithError(err).Debug("feed write failed")
				return
			}
		}
	}
}
