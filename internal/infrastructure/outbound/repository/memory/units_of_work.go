package memory

import (
	"context"
	"sync"

	ports "noders-content-service/internal/domain/ports/output"
	block_repository "noders-content-service/internal/domain/ports/output/block"
	image_repository "noders-content-service/internal/domain/ports/output/image"
	post_repository "noders-content-service/internal/domain/ports/output/post"
	block_memory "noders-content-service/internal/infrastructure/outbound/repository/block/memory"
	image_memory "noders-content-service/internal/infrastructure/outbound/repository/image/memory"
	post_memory "noders-content-service/internal/infrastructure/outbound/repository/post/memory"
	"noders-content-service/internal/infrastructure/outbound/repository/postgres"
)

// UnitOfWork runs one transaction at a time over in-process repositories.
// Rollback restores the state captured at Begin.
type UnitOfWork struct {
	mu     sync.Mutex
	log    ports.Logger
	Posts  *post_memory.PostRepository
	Blocks *block_memory.BlockRepository
	Images *image_memory.ImageRepository
}

func NewUnitOfWork(log ports.Logger) *UnitOfWork {
	blocks := block_memory.NewBlockRepository(log)
	return &UnitOfWork{
		log:    log,
		Posts:  post_memory.NewPostRepository(log),
		Blocks: blocks,
		Images: image_memory.NewImageRepository(log, blocks),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.Lock()
	return &transaction{
		uow: u,
		restore: []func(){
			u.Posts.Checkpoint(),
			u.Blocks.Checkpoint(),
			u.Images.Checkpoint(),
		},
	}, nil
}

type transaction struct {
	uow     *UnitOfWork
	once    sync.Once
	restore []func()
}

func (t *transaction) PostRepository() post_repository.Repository {
	return t.uow.Posts
}

func (t *transaction) BlockRepository() block_repository.Repository {
	return t.uow.Blocks
}

func (t *transaction) ImageRepository() image_repository.Repository {
	return t.uow.Images
}

func (t *transaction) Commit(ctx context.Context) error {
	t.once.Do(t.uow.mu.Unlock)
	return nil
}

// Rollback after Commit is a no-op, so it is safe to defer.
func (t *transaction) Rollback(ctx context.Context) error {
	t.once.Do(func() {
		for _, restore := range t.restore {
			restore()
		}
		t.uow.mu.Unlock()
	})
	return nil
}
