package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	authuc "github.com/pksaconstruction/pksa-api/internal/application/auth"
	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	domerrors "github.com/pksaconstruction/pksa-api/internal/domain/errors"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/auth"
)

// AdminHandler handles admin authentication and the contact message inbox.
type AdminHandler struct {
	login    *authuc.Login
	sessions *auth.Sessions
	messages ports.ContactMessageRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAdminHandler(login *authuc.Login, sessions *auth.Sessions, messages ports.ContactMessageRepository, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		login:    login,
		sessions: sessions,
		messages: messages,
		validate: validator.New(),
		log:      log,
	}
}

// Login handles POST /api/admin/login. On success it sets the session cookie.
// The failure message never says which credential was wrong.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !ValidEmail(body.Email) {
		writeFail(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}

	if err := h.login.Execute(body.Email, body.Password); err != nil {
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			h.log.Warn().Str("email", body.Email).Msg("admin login rejected")
			writeFail(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("admin login failed")
		writeFail(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}

	h.sessions.SetCookie(w, h.sessions.Issue())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

// Logout handles POST /api/admin/logout (session required).
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Session handles GET /api/admin/session, reporting whether the caller holds
// a valid admin session. Always 200; the payload carries the answer.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"authenticated": h.sessions.VerifyRequest(r),
	})
}

// ListMessages handles GET /api/admin/contact-messages.
func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list contact messages failed")
		writeFail(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

// DeleteMessage handles DELETE /api/admin/contact-messages/delete with { "id": ... }.
func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Message ID is required")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Message ID is required")
		return
	}

	deleted, err := h.messages.Delete(r.Context(), body.ID)
	if err != nil {
		h.log.Error().Err(err).Str("id", body.ID).Msg("delete contact message failed")
		writeFail(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}
	if !deleted {
		writeFail(w, http.StatusNotFound, "Message not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message deleted successfully",
	})
}
