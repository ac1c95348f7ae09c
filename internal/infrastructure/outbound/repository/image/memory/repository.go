package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

// ReferenceChecker tells the repository whether a block still uses an image.
type ReferenceChecker interface {
	ReferencesImage(imageID string) bool
}

type ImageRepository struct {
	log    ports.Logger
	refs   ReferenceChecker
	mu     sync.RWMutex
	images map[string]*model.Image
}

func NewImageRepository(log ports.Logger, refs ReferenceChecker) *ImageRepository {
	return &ImageRepository{
		log:    log,
		refs:   refs,
		images: make(map[string]*model.Image),
	}
}

func (r *ImageRepository) Create(ctx context.Context, image *model.Image) (*model.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *image
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.images[created.ID] = &created
	r.log.Debug("Stored image record (memory impl)", slog.String("id", created.ID), slog.String("owner_id", created.OwnerID))

	result := created
	return &result, nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*model.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	image, ok := r.images[id]
	if !ok {
		return nil, custom_errors.ErrImageNotFound
	}
	result := *image
	return &result, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; !ok {
		return custom_errors.ErrImageNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *ImageRepository) ListUnreferenced(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Image
	for _, image := range r.images {
		if image.Usage != model.ImageUsagePostBlock || !image.CreatedAt.Before(createdBefore) {
			continue
		}
		if r.refs != nil && r.refs.ReferencesImage(image.ID) {
			continue
		}
		cp := *image
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *ImageRepository) Checkpoint() func() {
	r.mu.RLock()
	saved := make(map[string]*model.Image, len(r.images))
	for id, image := range r.images {
		cp := *image
		saved[id] = &cp
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.images = saved
		r.mu.Unlock()
	}
}
