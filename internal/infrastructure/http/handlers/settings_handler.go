package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

// SettingsHandler handles the singleton app settings record.
type SettingsHandler struct {
	settings ports.SettingsRepository
	log      zerolog.Logger
}

func NewSettingsHandler(settings ports.SettingsRepository, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, log: log}
}

// Get handles GET /api/admin/settings (session required).
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("fetch settings failed")
		writeFail(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}

// Update handles PUT /api/admin/settings. All five fields are written on
// every save; omitted fields become null.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body domain.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.settings.Update(r.Context(), body)
	if err != nil {
		h.log.Error().Err(err).Msg("update settings failed")
		writeFail(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": updated,
	})
}

// Public handles GET /api/settings for the public pages (hero media and
// company contact details).
func (h *SettingsHandler) Public(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("fetch settings failed")
		writeFail(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}
