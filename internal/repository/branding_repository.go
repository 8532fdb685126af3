package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type brandingRepository struct {
	pool *pgxpool.Pool
}

// NewBrandingRepository returns a Postgres-backed branding repository.
// Branding is a single-row document keyed by a fixed id.
func NewBrandingRepository(pool *pgxpool.Pool) BrandingRepository {
	return &brandingRepository{pool: pool}
}

func (r *brandingRepository) Get(ctx context.Context) (*domain.Branding, error) {
	const query = `SELECT company_name, logo_url FROM branding WHERE id=1`
	var branding domain.Branding
	if err := r.pool.QueryRow(ctx, query).Scan(&branding.CompanyName, &branding.LogoURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Branding{}, nil
		}
		return nil, err
	}
	return &branding, nil
}

func (r *brandingRepository) Save(ctx context.Context, branding *domain.Branding) error {
	const query = `
        INSERT INTO branding (id, company_name, logo_url)
        VALUES (1, $1, $2)
        ON CONFLICT (id) DO UPDATE SET company_name=EXCLUDED.company_name, logo_url=EXCLUDED.logo_url`
	_, err := r.pool.Exec(ctx, query, branding.CompanyName, branding.LogoURL)
	return err
}
