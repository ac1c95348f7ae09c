package ports

import "context"

const (
	SubjectBlockCreated   = "post.block.created"
	SubjectBlockUpdated   = "post.block.updated"
	SubjectBlockDeleted   = "post.block.deleted"
	SubjectImageUploaded  = "image.uploaded"
	SubjectImageReclaimed = "image.reclaimed"
)

//go:generate mockery --name EventPublisher --dir . --output ../../../../mocks/events --outpkg mocks --filename EventPublisher.go
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close() error
}
