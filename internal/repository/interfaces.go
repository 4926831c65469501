package repository

import (
	"context"
	"errors"

	"github.com/osa911/formintake/internal/models"
)

// Sentinel errors for the repository layer
var (
	ErrUnsupportedScheme = errors.New("unsupported database scheme")
	ErrClosed            = errors.New("repository closed")
)

// SubmissionRepository defines the storage operations for form submissions.
// Every create is an unconditional insert into the record kind's collection.
type SubmissionRepository interface {
	// CreateHelp inserts a help request and fills in its ID and CreatedAt
	CreateHelp(ctx context.Context, req *models.HelpRequest) error
	// CreateContact inserts a contact request and fills in its ID and CreatedAt
	CreateContact(ctx context.Context, req *models.ContactRequest) error
	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
	// Close releases the underlying client
	Close(ctx context.Context) error
}

// Migrator is implemented by backends that need schema objects created
// before the first insert.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Migrate runs repo's migration when it has one.
func Migrate(ctx context.Context, repo SubmissionRepository) error {
	m, ok := repo.(Migrator)
	if !ok {
		return nil
	}
	return m.Migrate(ctx)
}
