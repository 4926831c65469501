package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/osa911/formintake/internal/models"
)

// gen_random_uuid is built in from PostgreSQL 13
const postgresSchema = `
CREATE TABLE IF NOT EXISTS help (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name         TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	query        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS contact (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	subject    TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a PostgreSQL connection pool. Tables are only
// created by Migrate.
func NewPostgresRepository(ctx context.Context, dsn string) (SubmissionRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &postgresRepository{db: db}, nil
}

func (r *postgresRepository) CreateHelp(ctx context.Context, req *models.HelpRequest) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO help (name, phone, email, company_name, query)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		req.Name, req.Phone, req.Email, req.CompanyName, req.Query,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert into help: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateContact(ctx context.Context, req *models.ContactRequest) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contact (name, email, phone, subject, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		req.Name, req.Email, req.Phone, req.Subject, req.Message,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert into contact: %w", err)
	}
	return nil
}

func (r *postgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed creating schema resources: %w", err)
	}
	return nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *postgresRepository) Close(context.Context) error {
	return r.db.Close()
}
