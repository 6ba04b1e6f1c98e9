package project

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	domerrors "github.com/pksaconstruction/pksa-api/internal/domain/errors"
)

// Delete removes a project submission and its stored files. File removal is
// best-effort: a failing object delete is logged and the remaining files and
// the database row are still deleted.
type Delete struct {
	projects ports.ProjectSubmissionRepository
	files    ports.FileStore
	log      zerolog.Logger
}

func NewDelete(projects ports.ProjectSubmissionRepository, files ports.FileStore, log zerolog.Logger) *Delete {
	return &Delete{projects: projects, files: files, log: log}
}

func (d *Delete) Execute(ctx context.Context, id string) error {
	record, err := d.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return domerrors.ErrNotFound
	}

	for _, f := range record.Files {
		if f.Path == "" {
			continue
		}
		if err := d.files.Remove(ctx, f.Path); err != nil {
			d.log.Error().Err(err).Str("path", f.Path).Msg("delete project file failed, continuing")
		}
	}

	return d.projects.Delete(ctx, id)
}
