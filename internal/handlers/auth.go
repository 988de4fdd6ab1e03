package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/models"
	"fintrack/internal/storage"
)

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Signup registers the local account: it stores the bcrypt credential,
// writes the user document and opens a session.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" || req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalError(w, r, "hash password", err)
		return
	}
	if err := h.sessions.SaveCredential(req.Email, hash); err != nil {
		h.internalError(w, r, "save credential", err)
		return
	}

	user, err := h.openSession(w, req.Email, req.Name)
	if err != nil {
		h.internalError(w, r, "open session", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

// Login authenticates and activates an account. With a password it is
// checked against the stored credential; without one the request is taken
// as a post-login identity handed over by the external OAuth layer. Either
// way the user document is rewritten with the free plan, matching how
// stored data has always been shaped.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	name := strings.TrimSpace(req.Name)
	if req.Password != "" {
		hash, err := h.sessions.GetCredential(req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrCredentialNotFound) {
				h.respondError(w, http.StatusUnauthorized, "E-mail ou senha incorretos")
				return
			}
			h.internalError(w, r, "load credential", err)
			return
		}
		if !auth.CheckPassword(req.Password, hash) {
			h.respondError(w, http.StatusUnauthorized, "E-mail ou senha incorretos")
			return
		}
	} else if name == "" {
		// Identity assertions must at least carry a display name.
		h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}
	if name == "" {
		name = req.Email
		if i := strings.IndexByte(req.Email, '@'); i > 0 {
			name = req.Email[:i]
		}
	}

	user, err := h.openSession(w, req.Email, name)
	if err != nil {
		h.internalError(w, r, "open session", err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}

// openSession overwrites the user document and sets a fresh session cookie.
func (h *Handlers) openSession(w http.ResponseWriter, email, name string) (*models.User, error) {
	user := models.User{
		Email:     email,
		Name:      name,
		Plan:      models.PlanFree,
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveUser(user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	if err := h.sessions.CreateSession(token, email, time.Now().Add(SessionDuration)); err != nil {
		return nil, err
	}
	h.setSessionCookie(w, token)
	return &user, nil
}

// Logout deletes the session and removes the user document.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteSession(cookie.Value); err != nil {
			h.log.Error().Err(err).Msg("delete session")
		}
	}
	if err := h.store.ClearUser(); err != nil {
		h.internalError(w, r, "clear user", err)
		return
	}
	h.clearSessionCookie(w)
	h.respondJSON(w, http.StatusNoContent, nil)
}

// Me returns the active user.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, GetUserFromContext(r))
}

type planRequest struct {
	Plan string `json:"plan"`
}

// UpdatePlan accepts the externally-set plan value, e.g. after the checkout
// flow completes. No billing state is kept here.
func (h *Handlers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Plan != models.PlanFree && req.Plan != models.PlanPremium {
		h.respondError(w, http.StatusBadRequest, "plano desconhecido")
		return
	}

	user := GetUserFromContext(r)
	user.Plan = req.Plan
	if err := h.store.SaveUser(*user); err != nil {
		h.internalError(w, r, "save user", err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}
