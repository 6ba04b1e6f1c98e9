package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

type ProjectSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewProjectSubmissionRepository(pool *pgxpool.Pool) *ProjectSubmissionRepository {
	return &ProjectSubmissionRepository{pool: pool}
}

func (r *ProjectSubmissionRepository) Save(ctx context.Context, input domain.ProjectSubmissionInput) (*domain.ProjectSubmission, error) {
	files := input.Files
	if files == nil {
		files = []domain.ProjectFile{}
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}
	p := domain.ProjectSubmission{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Category:        input.Category,
		Description:     input.Description,
		Location:        input.Location,
		Year:            input.Year,
		Size:            input.Size,
		Status:          input.Status,
		FullDescription: input.FullDescription,
		Files:           files,
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO project_submissions
		 (id, title, category, description, location, year, size, status, full_description, files)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`,
		p.ID, p.Title, p.Category, p.Description, p.Location, p.Year, p.Size, p.Status, p.FullDescription, filesJSON,
	).Scan(&p.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("insert project submission: %w", err)
	}
	return &p, nil
}

const projectColumns = `id, title, category, description, location, year, size, status, full_description, files, created_at`

func (r *ProjectSubmissionRepository) List(ctx context.Context) ([]domain.ProjectSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM project_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.ProjectSubmission{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectSubmissionRepository) GetByID(ctx context.Context, id string) (*domain.ProjectSubmission, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM project_submissions WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectSubmissionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM project_submissions WHERE id = $1`, id)
	return err
}

func scanProject(row pgx.Row) (*domain.ProjectSubmission, error) {
	var p domain.ProjectSubmission
	var filesJSON []byte
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Description, &p.Location,
		&p.Year, &p.Size, &p.Status, &p.FullDescription, &filesJSON, &p.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(filesJSON, &p.Files); err != nil {
		p.Files = []domain.ProjectFile{}
	}
	return &p, nil
}

var _ ports.ProjectSubmissionRepository = (*ProjectSubmissionRepository)(nil)
