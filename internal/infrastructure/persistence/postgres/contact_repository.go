package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

type ContactMessageRepository struct {
	pool *pgxpool.Pool
}

func NewContactMessageRepository(pool *pgxpool.Pool) *ContactMessageRepository {
	return &ContactMessageRepository{pool: pool}
}

func (r *ContactMessageRepository) Save(ctx context.Context, input domain.ContactMessageInput) (*domain.ContactMessage, error) {
	m := domain.ContactMessage{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message,
	).Scan(&m.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}
	return &m, nil
}

func (r *ContactMessageRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, subject, message, created_at
		 FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.SubmittedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *ContactMessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ ports.ContactMessageRepository = (*ContactMessageRepository)(nil)
