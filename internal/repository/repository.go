package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Options carries backend specific settings that do not fit in the URL
type Options struct {
	// FirebaseCredentialsFile is the service account key used by firestore://
	FirebaseCredentialsFile string
}

// Open connects to the store named by rawURL. The scheme selects the backend:
//
//	mongodb://, mongodb+srv://   MongoDB
//	firestore://<project-id>     Cloud Firestore
//	postgres://, postgresql://   PostgreSQL
//	memory://                    in-process store
func Open(ctx context.Context, rawURL string, opts Options) (SubmissionRepository, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return NewMongoRepository(ctx, rawURL)
	case "firestore":
		return NewFirestoreRepository(ctx, u.Host, opts.FirebaseCredentialsFile)
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, rawURL)
	case "memory":
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
