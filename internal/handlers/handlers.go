// Package handlers implements the JSON API the UI clients talk to. Every
// handler works against read-only snapshots from the document store and
// writes back through the same store operations.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/storage"

	"github.com/rs/zerolog"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store        storage.Store
	sessions     storage.SessionStore
	log          zerolog.Logger
	secureCookie bool
}

// New creates a Handlers instance over the given store backings.
func New(store storage.Store, sessions storage.SessionStore, log zerolog.Logger, secureCookie bool) *Handlers {
	return &Handlers{store: store, sessions: sessions, log: log, secureCookie: secureCookie}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// AuthMiddleware requires a valid session and an active user. It also
// implements rolling sessions: once a session is past the halfway point of
// its lifetime it is renewed on the next authenticated request.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			h.respondError(w, http.StatusUnauthorized, "não autenticado")
			return
		}

		info, err := h.sessions.ValidateSession(cookie.Value)
		if err != nil {
			h.clearSessionCookie(w)
			h.respondError(w, http.StatusUnauthorized, "sessão inválida ou expirada")
			return
		}

		user, err := h.store.GetUser()
		if err != nil {
			h.internalError(w, r, "load user", err)
			return
		}
		if user == nil || user.Email != info.Email {
			// Session survived a logout or a login as someone else.
			h.clearSessionCookie(w)
			h.respondError(w, http.StatusUnauthorized, "sessão inválida ou expirada")
			return
		}

		// Rolling session: renew once past the halfway point so active
		// users stay logged in while idle sessions still expire.
		now := time.Now()
		if info.ExpiresAt.Sub(now) < SessionDuration/2 {
			newExpiresAt := now.Add(SessionDuration)
			if err := h.sessions.RenewSession(cookie.Value, newExpiresAt); err == nil {
				h.setSessionCookie(w, cookie.Value)
			}
			// A failed renewal just leaves the current expiry in place.
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, errorResponse{Error: msg})
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg(op)
	h.respondError(w, http.StatusInternalServerError, "erro interno")
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
