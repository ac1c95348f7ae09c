package image_service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/logger"
	"noders-content-service/internal/infrastructure/outbound/metrics/prometheus"
	block_memory "noders-content-service/internal/infrastructure/outbound/repository/block/memory"
	image_memory "noders-content-service/internal/infrastructure/outbound/repository/image/memory"
	events_mock "noders-content-service/mocks/events"
	image_mock "noders-content-service/mocks/image"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

type imageFixture struct {
	blocks  *block_memory.BlockRepository
	images  *image_memory.ImageRepository
	store   *image_mock.ObjectStore
	events  *events_mock.EventPublisher
	service *ImageService
	now     time.Time
}

func newImageFixture(t *testing.T, maxBytes int64) *imageFixture {
	t.Helper()
	log := logger.New("test")
	blocks := block_memory.NewBlockRepository(log)
	f := &imageFixture{
		blocks: blocks,
		images: image_memory.NewImageRepository(log, blocks),
		store:  new(image_mock.ObjectStore),
		events: new(events_mock.EventPublisher),
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.service = NewImageService(f.images, f.store, f.events, log, prometheus.NewPrometheusMetricsProvider(), Options{
		MaxBytes:   maxBytes,
		BatchLimit: 10,
		Now:        func() time.Time { return f.now },
	})
	return f
}

func TestImageService_Upload(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
		ext         string
	}{
		{"png", pngBytes, "image/png", ".png"},
		{"gif", gifBytes, "image/gif", ".gif"},
		{"jpeg", jpegBytes, "image/jpeg", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImageFixture(t, 1<<20)
			f.store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, "post_block/") && strings.HasSuffix(key, tt.ext)
			}), tt.data, tt.contentType).Return("/media/key"+tt.ext, nil)

			image, err := f.service.Upload(context.Background(), &model.UploadImageDTO{
				OwnerID:  "u1",
				Filename: "../photos/cat" + tt.ext,
				Data:     tt.data,
				AltText:  "  a cat  ",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.contentType, image.ContentType)
			assert.Equal(t, model.ImageUsagePostBlock, image.Usage)
			assert.Equal(t, "cat"+tt.ext, image.Filename)
			assert.Equal(t, "a cat", image.AltText)
			assert.Equal(t, int64(len(tt.data)), image.SizeBytes)
			assert.Equal(t, f.now, image.CreatedAt)

			stored, err := f.images.GetByID(context.Background(), image.ID)
			require.NoError(t, err)
			assert.Equal(t, image.PublicURL, stored.PublicURL)
			f.store.AssertExpectations(t)
			f.events.AssertCalled(t, "Publish", mock.Anything, ports.SubjectImageUploaded, mock.AnythingOfType("model.ImageEvent"))
		})
	}
}

func TestImageService_UploadRejections(t *testing.T) {
	tests := []struct {
		name    string
		upload  *model.UploadImageDTO
		wantErr error
	}{
		{"anonymous", &model.UploadImageDTO{Data: pngBytes}, custom_errors.ErrUnauthenticated},
		{"empty file", &model.UploadImageDTO{OwnerID: "u1"}, custom_errors.ErrInvalidInput},
		{"bad usage", &model.UploadImageDTO{OwnerID: "u1", Data: pngBytes, Usage: "banner"}, custom_errors.ErrInvalidInput},
		{"too large", &model.UploadImageDTO{OwnerID: "u1", Data: make([]byte, 65)}, custom_errors.ErrImageTooLarge},
		{"not an image", &model.UploadImageDTO{OwnerID: "u1", Data: []byte("plain text, not pixels")}, custom_errors.ErrUnsupportedImageType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImageFixture(t, 64)
			_, err := f.service.Upload(context.Background(), tt.upload)
			assert.ErrorIs(t, err, tt.wantErr)
			f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestImageService_UploadStoreFailure(t *testing.T) {
	f := newImageFixture(t, 0)
	f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	_, err := f.service.Upload(context.Background(), &model.UploadImageDTO{OwnerID: "u1", Data: pngBytes})
	assert.ErrorIs(t, err, custom_errors.ErrImageStoreFailed)

	orphans, err := f.images.ListUnreferenced(context.Background(), f.now.Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestImageService_ReclaimOrphans(t *testing.T) {
	f := newImageFixture(t, 0)
	ctx := context.Background()

	old := f.now.Add(-48 * time.Hour)
	seed := func(id string, usage model.ImageUsage, createdAt time.Time) {
		_, err := f.images.Create(ctx, &model.Image{
			ID:         id,
			OwnerID:    "u1",
			StorageKey: string(usage) + "/" + id + ".png",
			Usage:      usage,
			CreatedAt:  createdAt,
		})
		require.NoError(t, err)
	}
	seed("orphan", model.ImageUsagePostBlock, old)
	seed("referenced", model.ImageUsagePostBlock, old)
	seed("fresh", model.ImageUsagePostBlock, f.now.Add(-time.Hour))
	seed("avatar", model.ImageUsageAvatar, old)

	_, err := f.blocks.Create(ctx, &model.CreateBlockDTO{
		PostID:  "p1",
		Type:    model.BlockTypeImage,
		Content: model.ImageContent{ImageID: "referenced"},
	})
	require.NoError(t, err)

	f.store.On("Delete", mock.Anything, "post_block/orphan.png").Return(nil).Once()

	reclaimed, err := f.service.ReclaimOrphans(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, reclaimed)

	_, err = f.images.GetByID(ctx, "orphan")
	assert.ErrorIs(t, err, custom_errors.ErrImageNotFound)
	for _, id := range []string{"referenced", "fresh", "avatar"} {
		_, err := f.images.GetByID(ctx, id)
		assert.NoError(t, err, id)
	}
	f.store.AssertExpectations(t)
	f.events.AssertCalled(t, "Publish", mock.Anything, ports.SubjectImageReclaimed, mock.AnythingOfType("model.ImageEvent"))
}

func TestImageService_ReclaimOrphans_KeepsRecordWhenObjectDeleteFails(t *testing.T) {
	f := newImageFixture(t, 0)
	ctx := context.Background()

	_, err := f.images.Create(ctx, &model.Image{
		ID:         "orphan",
		StorageKey: "post_block/orphan.png",
		Usage:      model.ImageUsagePostBlock,
		CreatedAt:  f.now.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	f.store.On("Delete", mock.Anything, "post_block/orphan.png").Return(errors.New("permission denied"))

	reclaimed, err := f.service.ReclaimOrphans(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, reclaimed)

	_, err = f.images.GetByID(ctx, "orphan")
	assert.NoError(t, err)
}
