package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/bloomora/internal/core/service"
)

// GET  v1/session (200 OK)
// POST v1/session/login JSON {"email" string, "name" string} (200 OK, 400)
// POST v1/session/google (200 OK, 503, 504)
// POST v1/session/logout (200 OK {"redirect": "/login"})
// GET  v1/profile (200 OK, 401 {"redirect": "/login"})

type SessionHandler struct {
	session *service.SessionStore
}

func RegisterSession(mux *http.ServeMux, session *service.SessionStore) {
	h := SessionHandler{session}
	mux.HandleFunc("GET /v1/session", h.GetSession)
	mux.HandleFunc("POST /v1/session/login", h.Login)
	mux.HandleFunc("POST /v1/session/google", h.LoginWithGoogle)
	mux.HandleFunc("POST /v1/session/logout", h.Logout)
	mux.HandleFunc("GET /v1/profile", h.GetProfile)
}

func (h SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.GetSession"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.snapshot())
}

func (h SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.Login"
	log := slog.With("op", op)

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if _, err := h.session.Login(r.Context(), req.Email, req.Name); err != nil {
		// signed in for this run, not remembered across restarts
		log.Error("failed to persist identity", "err", err)
	}
	writeJSON(w, log, http.StatusOK, h.snapshot())
}

// LoginWithGoogle waits for the federated sign-in with the request
// context. A client that gives up still ends up signed in.
//
// A sign-in that succeeded but was not persisted is still reported as 200.
func (h SessionHandler) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.LoginWithGoogle"
	log := slog.With("op", op)

	t := h.session.LoginWithFederatedProvider(r.Context())
	identity, err := t.Wait(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, log, http.StatusGatewayTimeout, err)
		return
	case identity.IsGoogle:
		log.Error("signed in without persisting", "err", err)
	default:
		writeError(w, log, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, log, http.StatusOK, Session{
		Authenticated: true, Identity: identityFromDomain(identity),
	})
}

func (h SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.Logout"
	log := slog.With("op", op)

	redirect, err := h.session.Logout(r.Context())
	if err != nil {
		log.Error("failed to delete stored identity", "err", err)
	}
	writeJSON(w, log, http.StatusOK, Redirect{Redirect: redirect})
}

func (h SessionHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.GetProfile"
	log := slog.With("op", op)

	identity, err := h.session.RequireIdentity()
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, identityFromDomain(identity))
}

func (h SessionHandler) snapshot() Session {
	identity, ok := h.session.Identity()
	if !ok {
		return Session{}
	}
	return Session{Authenticated: true, Identity: identityFromDomain(identity)}
}
