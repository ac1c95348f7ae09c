package memory

import (
	"context"
	"sync"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
)

type ProfileRepository struct {
	log      ports.Logger
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

func NewProfileRepository(log ports.Logger) *ProfileRepository {
	return &ProfileRepository{
		log:      log,
		profiles: make(map[string]*model.Profile),
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, custom_errors.ErrProfileNotFound
	}
	result := *profile
	return &result, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *profile
	if existing, ok := r.profiles[profile.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	if stored.Role == "" {
		stored.Role = model.RoleMember
	}
	r.profiles[stored.ID] = &stored

	result := stored
	return &result, nil
}
