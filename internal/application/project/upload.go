package project

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

const defaultContentType = "application/octet-stream"

var nonAlnum = regexp.MustCompile(`[^a-z0-9_-]`)

// UploadFile is one in-memory file blob from a multipart submission.
type UploadFile struct {
	Name        string
	Data        []byte
	ContentType string
}

// Upload stores the submitted files in the bucket and then persists the
// project record. A failed upload aborts the whole submission; there is no
// partial success.
type Upload struct {
	projects ports.ProjectSubmissionRepository
	files    ports.FileStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewUpload(projects ports.ProjectSubmissionRepository, files ports.FileStore, log zerolog.Logger) *Upload {
	return &Upload{projects: projects, files: files, log: log, now: time.Now}
}

func (u *Upload) Execute(ctx context.Context, input domain.ProjectSubmissionInput, files []UploadFile) (*domain.ProjectSubmission, error) {
	ts := u.now().UnixMilli()
	uploaded := make([]domain.ProjectFile, 0, len(files))

	for i, f := range files {
		if f.Name == "" || len(f.Data) == 0 {
			continue
		}
		path := objectPath(ts, i, f.Name)
		contentType := f.ContentType
		if contentType == "" {
			contentType = defaultContentType
		}
		if err := u.files.Upload(ctx, path, f.Data, contentType); err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		url := u.files.PublicURL(path)
		size := int64(len(f.Data))
		uploaded = append(uploaded, domain.ProjectFile{
			Name: f.Name,
			Path: path,
			URL:  &url,
			Type: &contentType,
			Size: &size,
		})
	}

	input.Files = uploaded
	record, err := u.projects.Save(ctx, input)
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("id", record.ID).Int("files", len(uploaded)).Msg("project submission stored")
	return record, nil
}

// objectPath builds a collision-resistant bucket key: same-named files in one
// request differ by index, concurrent requests by timestamp.
func objectPath(ts int64, index int, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	sanitized := nonAlnum.ReplaceAllString(strings.ToLower(base), "_")
	return fmt.Sprintf("projects/%d-%d-%s%s", ts, index, sanitized, ext)
}
