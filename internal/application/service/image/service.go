package image_service

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	image_repository "noders-content-service/internal/domain/ports/output/image"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Options struct {
	MaxBytes   int64
	BatchLimit int
	Now        func() time.Time
}

type ImageService struct {
	imageRepo  image_repository.Repository
	store      image_repository.ObjectStore
	events     ports.EventPublisher
	log        ports.Logger
	metrics    ports.MetricsProvider
	maxBytes   int64
	batchLimit int
	now        func() time.Time
}

func NewImageService(
	imageRepo image_repository.Repository,
	store image_repository.ObjectStore,
	events ports.EventPublisher,
	log ports.Logger,
	metrics ports.MetricsProvider,
	opts Options,
) *ImageService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = 100
	}
	return &ImageService{
		imageRepo:  imageRepo,
		store:      store,
		events:     events,
		log:        log,
		metrics:    metrics,
		maxBytes:   opts.MaxBytes,
		batchLimit: opts.BatchLimit,
		now:        opts.Now,
	}
}

func (s *ImageService) Upload(ctx context.Context, upload *model.UploadImageDTO) (result *model.Image, err error) {
	defer func() { s.metrics.IncrementImageOperations("upload", err == nil) }()

	if upload.OwnerID == "" {
		return nil, custom_errors.ErrUnauthenticated
	}
	usage := upload.Usage
	if usage == "" {
		usage = model.ImageUsagePostBlock
	}
	if !usage.IsValid() || len(upload.Data) == 0 {
		return nil, custom_errors.ErrInvalidInput
	}
	if s.maxBytes > 0 && int64(len(upload.Data)) > s.maxBytes {
		s.log.Debug("Upload exceeds size limit", slog.Int("size", len(upload.Data)), slog.Int64("limit", s.maxBytes))
		return nil, custom_errors.ErrImageTooLarge
	}

	detected := mimetype.Detect(upload.Data)
	contentType, ext, ok := allowed(detected)
	if !ok {
		s.log.Debug("Rejected upload content type", slog.String("detected", detected.String()))
		return nil, custom_errors.ErrUnsupportedImageType
	}

	id := uuid.NewString()
	key := path.Join(string(usage), id+ext)
	publicURL, err := s.store.Put(ctx, key, upload.Data, contentType)
	if err != nil {
		s.log.Error("Failed to store image object", slog.String("key", key), slog.String("error", err.Error()))
		return nil, custom_errors.ErrImageStoreFailed
	}

	image, err := s.imageRepo.Create(ctx, &model.Image{
		ID:          id,
		OwnerID:     upload.OwnerID,
		StorageKey:  key,
		PublicURL:   publicURL,
		Filename:    cleanFilename(upload.Filename, id+ext),
		ContentType: contentType,
		SizeBytes:   int64(len(upload.Data)),
		Usage:       usage,
		AltText:     strings.TrimSpace(upload.AltText),
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.log.Error("Failed to save image record", slog.String("id", id), slog.String("error", err.Error()))
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn("Failed to remove stored object after failed insert", slog.String("key", key), slog.String("error", delErr.Error()))
		}
		return nil, custom_errors.ErrImageStoreFailed
	}

	s.log.Info("Image uploaded", slog.String("id", image.ID), slog.String("owner_id", image.OwnerID), slog.String("usage", string(image.Usage)))
	s.publish(ctx, ports.SubjectImageUploaded, image)
	return image, nil
}

// ReclaimOrphans removes post block images that no block references and that
// were uploaded more than olderThan ago. It returns how many were removed.
func (s *ImageService) ReclaimOrphans(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	orphans, err := s.imageRepo.ListUnreferenced(ctx, cutoff, s.batchLimit)
	if err != nil {
		s.metrics.IncrementImageOperations("reclaim", false)
		s.log.Error("Failed to list unreferenced images", slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}

	reclaimed := 0
	for _, image := range orphans {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := s.store.Delete(ctx, image.StorageKey); err != nil {
			s.log.Warn("Failed to delete orphaned object", slog.String("id", image.ID), slog.String("error", err.Error()))
			continue
		}
		if err := s.imageRepo.Delete(ctx, image.ID); err != nil && !errors.Is(err, custom_errors.ErrImageNotFound) {
			s.log.Warn("Failed to delete orphaned image record", slog.String("id", image.ID), slog.String("error", err.Error()))
			continue
		}
		reclaimed++
		s.publish(ctx, ports.SubjectImageReclaimed, image)
	}

	s.metrics.IncrementImageOperations("reclaim", true)
	s.metrics.AddReclaimedImages(reclaimed)
	if reclaimed > 0 {
		s.log.Info("Reclaimed orphaned images", slog.Int("count", reclaimed), slog.Time("cutoff", cutoff))
	}
	return reclaimed, ctx.Err()
}

func (s *ImageService) publish(ctx context.Context, subject string, image *model.Image) {
	event := model.ImageEvent{
		ImageID:    image.ID,
		OwnerID:    image.OwnerID,
		Usage:      image.Usage,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, subject, event); err != nil {
		s.log.Warn("Failed to publish image event", slog.String("subject", subject), slog.String("error", err.Error()))
	}
}

func allowed(detected *mimetype.MIME) (contentType, ext string, ok bool) {
	for mime := detected; mime != nil; mime = mime.Parent() {
		if ext, ok := allowedTypes[mime.String()]; ok {
			return mime.String(), ext, true
		}
	}
	return "", "", false
}

func cleanFilename(name, fallback string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == "/" || base == "" {
		return fallback
	}
	return base
}
