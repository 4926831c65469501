package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/osa911/formintake/internal/config/firebase"
	"github.com/osa911/formintake/internal/models"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository opens Cloud Firestore for projectID through the
// Firebase Admin SDK
func NewFirestoreRepository(ctx context.Context, projectID, credentialsFile string) (SubmissionRepository, error) {
	client, err := firebase.NewFirestoreClient(ctx, projectID, credentialsFile)
	if err != nil {
		return nil, err
	}
	return &firestoreRepository{client: client}, nil
}

func (r *firestoreRepository) CreateHelp(ctx context.Context, req *models.HelpRequest) error {
	req.CreatedAt = time.Now().UTC()
	ref, _, err := r.client.Collection(models.CollectionHelp).Add(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", models.CollectionHelp, err)
	}
	req.ID = ref.ID
	return nil
}

func (r *firestoreRepository) CreateContact(ctx context.Context, req *models.ContactRequest) error {
	req.CreatedAt = time.Now().UTC()
	ref, _, err := r.client.Collection(models.CollectionContact).Add(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", models.CollectionContact, err)
	}
	req.ID = ref.ID
	return nil
}

// Ping reads at most one document, Firestore has no dedicated health call
func (r *firestoreRepository) Ping(ctx context.Context) error {
	iter := r.client.Collection(models.CollectionHelp).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (r *firestoreRepository) Close(context.Context) error {
	return r.client.Close()
}
