package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osa911/formintake/internal/models"
)

// MemoryRepository keeps submissions in process memory. Used for local
// development and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	help    []models.HelpRequest
	contact []models.ContactRequest
	closed  bool
	now     func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) CreateHelp(_ context.Context, req *models.HelpRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	req.ID = uuid.NewString()
	req.CreatedAt = r.now().UTC()
	r.help = append(r.help, *req)
	return nil
}

func (r *MemoryRepository) CreateContact(_ context.Context, req *models.ContactRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	req.ID = uuid.NewString()
	req.CreatedAt = r.now().UTC()
	r.contact = append(r.contact, *req)
	return nil
}

// HelpRequests returns a copy of the stored help requests in insertion order
func (r *MemoryRepository) HelpRequests() []models.HelpRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.HelpRequest(nil), r.help...)
}

// ContactRequests returns a copy of the stored contact requests in insertion order
func (r *MemoryRepository) ContactRequests() []models.ContactRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ContactRequest(nil), r.contact...)
}

func (r *MemoryRepository) Ping(context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

func (r *MemoryRepository) Close(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
