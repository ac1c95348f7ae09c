package image_repository

import "context"

//go:generate mockery --name ObjectStore --dir . --output ../../../../../mocks/image --outpkg mocks --filename ObjectStore.go
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
	Delete(ctx context.Context, key string) error
}
