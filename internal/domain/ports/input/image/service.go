package image_service

import (
	"context"
	"time"

	model "noders-content-service/internal/domain/models"
)

type Service interface {
	Upload(ctx context.Context, upload *model.UploadImageDTO) (*model.Image, error)
	ReclaimOrphans(ctx context.Context, olderThan time.Duration) (int, error)
}
