package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/buildinfo"
	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/httpjson"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

const defaultRequestTimeout = 30 * time.Second

const upstreamErrorMessage = "Failed to load content. Please check your API key and try again."

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, buildinfo.Current())
}

func accessLogFn(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	logger.Info().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("http")
}

// writeAppError traduit une erreur applicative en réponse JSON.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *app.CodedError
	switch {
	case errors.Is(err, app.ErrNotConfigured):
		httpjson.WriteError(w, http.StatusServiceUnavailable, "TMDB API token is not configured")
	case errors.As(err, &ce) && ce.Status == http.StatusNotFound:
		httpjson.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrUpstream):
		hlog.FromRequest(r).Warn().Err(err).Str("code", app.ErrorCode(err)).Msg("upstream failure")
		httpjson.WriteError(w, http.StatusBadGateway, upstreamErrorMessage)
	case errors.Is(err, context.DeadlineExceeded):
		httpjson.WriteError(w, http.StatusGatewayTimeout, "timeout")
	case errors.Is(err, ports.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidMediaType),
		errors.Is(err, domain.ErrInvalidImageClass),
		errors.Is(err, domain.ErrInvalidImageSize):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// queryInt lit un entier positif optionnel; absent donne def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

func publishJSON(bus ports.EventBus, topic string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	bus.Publish(topic, b)
}
