package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/contact"
	"github.com/pksaconstruction/pksa-api/internal/domain"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/middleware"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	submit   *contact.Submit
	validate *validator.Validate
	devMode  bool
	log      zerolog.Logger
}

func NewContactHandler(submit *contact.Submit, devMode bool, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{submit: submit, validate: validator.New(), devMode: devMode, log: log}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,max=254"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// Submit handles POST /api/contact: persist the message, then make one
// best-effort notification attempt. Email failure never fails the request.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body contactRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Please fill in all required fields")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Subject = strings.TrimSpace(body.Subject)
	body.Message = strings.TrimSpace(body.Message)
	if err := h.validate.Struct(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Please fill in all required fields")
		return
	}
	if !ValidEmail(body.Email) {
		writeFail(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}

	result := h.submit.Execute(r.Context(), domain.ContactMessageInput{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   TrimmedOrNil(body.Phone),
		Subject: body.Subject,
		Message: body.Message,
	})

	middleware.RecordContactSubmission(result.Message != nil, result.EmailSent)

	resp := map[string]interface{}{
		"success":   result.Succeeded(),
		"message":   submitMessage(result),
		"emailSent": result.EmailSent,
		"data":      result.Message,
	}
	if h.devMode && result.EmailErr != nil {
		resp["debug"] = map[string]string{"emailError": result.EmailErr.Error()}
	}

	status := http.StatusOK
	if !result.Succeeded() {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func submitMessage(result contact.SubmitResult) string {
	switch {
	case result.EmailSent:
		return "Your message has been sent successfully!"
	case result.Message != nil:
		return "Your message has been received and saved. However, email notification failed. Please contact us directly."
	default:
		return "Failed to send message. Please try again later."
	}
}
