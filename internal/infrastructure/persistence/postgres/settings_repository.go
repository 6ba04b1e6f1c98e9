package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	var s domain.AppSettings
	err := r.pool.QueryRow(ctx,
		`SELECT company_name, contact_email, contact_phone, hero_video_url, hero_poster_url
		 FROM app_settings WHERE key = $1`, domain.SettingsKey,
	).Scan(&s.CompanyName, &s.ContactEmail, &s.ContactPhone, &s.HeroVideoURL, &s.HeroPosterURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &domain.AppSettings{}, nil
		}
		return nil, err
	}
	return &s, nil
}

// Update upserts the singleton row, always writing all five fields so omitted
// ones are nulled rather than left stale.
func (r *SettingsRepository) Update(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error) {
	var s domain.AppSettings
	err := r.pool.QueryRow(ctx,
		`INSERT INTO app_settings (key, company_name, contact_email, contact_phone, hero_video_url, hero_poster_url, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (key) DO UPDATE SET
		   company_name = EXCLUDED.company_name,
		   contact_email = EXCLUDED.contact_email,
		   contact_phone = EXCLUDED.contact_phone,
		   hero_video_url = EXCLUDED.hero_video_url,
		   hero_poster_url = EXCLUDED.hero_poster_url,
		   updated_at = now()
		 RETURNING company_name, contact_email, contact_phone, hero_video_url, hero_poster_url`,
		domain.SettingsKey, settings.CompanyName, settings.ContactEmail, settings.ContactPhone,
		settings.HeroVideoURL, settings.HeroPosterURL,
	).Scan(&s.CompanyName, &s.ContactEmail, &s.ContactPhone, &s.HeroVideoURL, &s.HeroPosterURL)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)
