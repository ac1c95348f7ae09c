package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RollbackRestores(t *testing.T) {
	uow := NewUnitOfWork(logger.New("test"))
	ctx := context.Background()

	post, err := uow.Posts.Create(ctx, &model.Post{AuthorID: "u1", Title: "kept"})
	require.NoError(t, err)

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.BlockRepository().Create(ctx, &model.CreateBlockDTO{PostID: post.ID, Type: model.BlockTypeQuote, Content: model.QuoteContent{Quote: "gone"}})
	require.NoError(t, err)
	_, err = tx.ImageRepository().Create(ctx, &model.Image{ID: "img-1", Usage: model.ImageUsagePostBlock})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	blocks, err := uow.Blocks.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
	_, err = uow.Images.GetByID(ctx, "img-1")
	assert.Error(t, err)
	_, err = uow.Posts.GetByID(ctx, post.ID)
	assert.NoError(t, err)
}

func TestUnitOfWork_CommitKeepsAndRollbackAfterCommitIsNoop(t *testing.T) {
	uow := NewUnitOfWork(logger.New("test"))
	ctx := context.Background()

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.BlockRepository().Create(ctx, &model.CreateBlockDTO{PostID: "p1", Type: model.BlockTypeQuote, Content: model.QuoteContent{Quote: "stay"}})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	blocks, err := uow.Blocks.ListByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestUnitOfWork_SerializesTransactions(t *testing.T) {
	uow := NewUnitOfWork(logger.New("test"))
	ctx := context.Background()

	first, err := uow.Begin(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	began := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, err := uow.Begin(ctx)
		if assert.NoError(t, err) {
			close(began)
			_ = second.Commit(ctx)
		}
	}()

	select {
	case <-began:
		t.Fatal("second transaction started while the first was open")
	case <-time.After(30 * time.Millisecond):
	}
	require.NoError(t, first.Commit(ctx))
	wg.Wait()
}

func TestUnitOfWork_CanceledContext(t *testing.T) {
	uow := NewUnitOfWork(logger.New("test"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uow.Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
