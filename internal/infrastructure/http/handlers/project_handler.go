package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/application/project"
	"github.com/pksaconstruction/pksa-api/internal/domain"
	domerrors "github.com/pksaconstruction/pksa-api/internal/domain/errors"
)

// Multipart uploads are buffered up to this size in memory.
const maxUploadMemory = 32 << 20

// ProjectHandler handles the public project listing and the admin upload and
// delete operations.
type ProjectHandler struct {
	projects ports.ProjectSubmissionRepository
	upload   *project.Upload
	remove   *project.Delete
	log      zerolog.Logger
}

func NewProjectHandler(projects ports.ProjectSubmissionRepository, upload *project.Upload, remove *project.Delete, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, upload: upload, remove: remove, log: log}
}

// projectResponse is the wire shape of one project listing.
type projectResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Category        string               `json:"category"`
	Description     string               `json:"description"`
	FullDescription string               `json:"fullDescription"`
	Location        string               `json:"location"`
	Year            string               `json:"year"`
	Size            string               `json:"size"`
	Status          string               `json:"status"`
	Files           []domain.ProjectFile `json:"files"`
	Image           string               `json:"image"`
	SubmittedAt     time.Time            `json:"submittedAt"`
	Features        []string             `json:"features"`
}

func toProjectResponse(p *domain.ProjectSubmission) projectResponse {
	full := p.Description
	if p.FullDescription != nil && *p.FullDescription != "" {
		full = *p.FullDescription
	}
	files := p.Files
	if files == nil {
		files = []domain.ProjectFile{}
	}
	return projectResponse{
		ID:              p.ID,
		Title:           p.Title,
		Category:        p.Category,
		Description:     p.Description,
		FullDescription: full,
		Location:        strOrEmpty(p.Location),
		Year:            strOrEmpty(p.Year),
		Size:            strOrEmpty(p.Size),
		Status:          strOrEmpty(p.Status),
		Files:           files,
		Image:           p.Image(),
		SubmittedAt:     p.SubmittedAt,
		Features:        []string{},
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.projects.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		writeFail(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	out := make([]projectResponse, 0, len(records))
	for i := range records {
		out = append(out, toProjectResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"projects": out,
	})
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	record, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("get project failed")
		writeFail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if record == nil {
		writeFail(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"project": toProjectResponse(record),
	})
}

// Delete handles DELETE /api/projects/{id} (session required). Stored file
// objects are removed best-effort before the record itself.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeFail(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	if err := h.remove.Execute(r.Context(), id); err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			writeFail(w, http.StatusNotFound, "Project not found")
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("delete project failed")
		writeFail(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// Upload handles POST /api/projects/upload (session required, multipart).
func (h *ProjectHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid upload request")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	category := strings.TrimSpace(r.FormValue("category"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || category == "" || description == "" {
		writeFail(w, http.StatusBadRequest, "Please fill in all required fields (Title, Category, Description)")
		return
	}
	if !domain.ValidCategory(category) {
		writeFail(w, http.StatusBadRequest, "Invalid project category")
		return
	}

	var files []project.UploadFile
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			if fh.Size == 0 {
				continue
			}
			f, err := fh.Open()
			if err != nil {
				writeFail(w, http.StatusBadRequest, "Invalid upload request")
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeFail(w, http.StatusBadRequest, "Invalid upload request")
				return
			}
			files = append(files, project.UploadFile{
				Name:        fh.Filename,
				Data:        data,
				ContentType: fh.Header.Get("Content-Type"),
			})
		}
	}

	record, err := h.upload.Execute(r.Context(), domain.ProjectSubmissionInput{
		Title:           title,
		Category:        category,
		Description:     description,
		Location:        TrimmedOrNil(r.FormValue("location")),
		Year:            TrimmedOrNil(r.FormValue("year")),
		Size:            TrimmedOrNil(r.FormValue("size")),
		Status:          TrimmedOrNil(r.FormValue("status")),
		FullDescription: TrimmedOrNil(r.FormValue("fullDescription")),
	}, files)
	if err != nil {
		h.log.Error().Err(err).Msg("project upload failed")
		writeFail(w, http.StatusInternalServerError, "Failed to upload project. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Project uploaded successfully!",
		"data":    record,
	})
}
