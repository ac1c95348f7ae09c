package block_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	block_repository "noders-content-service/internal/domain/ports/output/block"
	post_repository "noders-content-service/internal/domain/ports/output/post"
	"noders-content-service/internal/domain/rules"
	"noders-content-service/internal/infrastructure/outbound/repository/postgres"
)

type BlockService struct {
	blockRepo block_repository.Repository
	postRepo  post_repository.Repository
	uow       postgres.UnitOfWork
	events    ports.EventPublisher
	log       ports.Logger
	metrics   ports.MetricsProvider
}

func NewBlockService(
	blockRepo block_repository.Repository,
	postRepo post_repository.Repository,
	uow postgres.UnitOfWork,
	events ports.EventPublisher,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *BlockService {
	return &BlockService{
		blockRepo: blockRepo,
		postRepo:  postRepo,
		uow:       uow,
		events:    events,
		log:       log,
		metrics:   metrics,
	}
}

func (s *BlockService) ListBlocks(ctx context.Context, postID string) ([]model.Block, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	blocks, err := s.blockRepo.ListByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list blocks", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return blocks, nil
}

func (s *BlockService) CreateBlock(ctx context.Context, actor *model.Principal, block *model.CreateBlockDTO) (result *model.Block, err error) {
	if actor == nil {
		return nil, custom_errors.ErrUnauthenticated
	}
	defer func() { s.metrics.IncrementBlockOperations("create", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	if _, err = s.lockOwnedPost(ctx, tx, actor, block.PostID); err != nil {
		return nil, err
	}

	blockRepo := tx.BlockRepository()
	existing, err := blockRepo.ListByPost(ctx, block.PostID)
	if err != nil {
		s.log.Error("Failed to list blocks", slog.String("post_id", block.PostID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = rules.ValidateAppend(existing, block.Type, block.Content); err != nil {
		s.recordViolation(err)
		s.log.Debug("Block rejected", slog.String("post_id", block.PostID), slog.String("error", err.Error()))
		return nil, err
	}
	if err = s.checkImageReference(ctx, tx, block.Content); err != nil {
		return nil, err
	}

	if block.OrderIndex != len(existing) {
		s.log.Debug("Client order index differs, appending at end",
			slog.String("post_id", block.PostID),
			slog.Int("requested", block.OrderIndex),
			slog.Int("assigned", len(existing)))
	}
	created, err := blockRepo.Create(ctx, &model.CreateBlockDTO{
		PostID:     block.PostID,
		Type:       block.Type,
		Content:    block.Content,
		OrderIndex: len(existing),
	})
	if err != nil {
		s.log.Error("Failed to create block", slog.String("post_id", block.PostID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrBlockCreateFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrBlockCreateFailed
	}
	txCommitted = true

	s.log.Info("Block created", slog.String("post_id", created.PostID), slog.String("block_id", created.ID), slog.String("type", string(created.Type)))
	s.publish(ctx, ports.SubjectBlockCreated, created, actor)
	return created, nil
}

func (s *BlockService) UpdateBlock(ctx context.Context, actor *model.Principal, postID, blockID string, update *model.UpdateBlockDTO) (result *model.Block, err error) {
	if actor == nil {
		return nil, custom_errors.ErrUnauthenticated
	}
	defer func() { s.metrics.IncrementBlockOperations("update", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	if _, err = s.lockOwnedPost(ctx, tx, actor, postID); err != nil {
		return nil, err
	}

	blockRepo := tx.BlockRepository()
	current, err := blockRepo.GetByID(ctx, postID, blockID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrBlockNotFound) {
			return nil, custom_errors.ErrBlockNotFound
		}
		s.log.Error("Failed to get block", slog.String("block_id", blockID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	content, err := model.DecodeContent(current.Type, update.Content)
	if err != nil {
		s.log.Debug("Malformed block content", slog.String("block_id", blockID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrInvalidInput
	}
	if err = rules.ValidateContent(current.Type, content); err != nil {
		s.recordViolation(err)
		return nil, err
	}
	if err = s.checkImageReference(ctx, tx, content); err != nil {
		return nil, err
	}

	updated, err := blockRepo.UpdateContent(ctx, postID, blockID, content)
	if err != nil {
		if errors.Is(err, custom_errors.ErrBlockNotFound) {
			return nil, custom_errors.ErrBlockNotFound
		}
		s.log.Error("Failed to update block", slog.String("block_id", blockID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrBlockUpdateFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrBlockUpdateFailed
	}
	txCommitted = true

	s.publish(ctx, ports.SubjectBlockUpdated, updated, actor)
	return updated, nil
}

func (s *BlockService) DeleteBlock(ctx context.Context, actor *model.Principal, postID, blockID string) (err error) {
	if actor == nil {
		return custom_errors.ErrUnauthenticated
	}
	defer func() { s.metrics.IncrementBlockOperations("delete", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	if _, err = s.lockOwnedPost(ctx, tx, actor, postID); err != nil {
		return err
	}

	blockRepo := tx.BlockRepository()
	existing, err := blockRepo.ListByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list blocks", slog.String("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var target *model.Block
	for i := range existing {
		if existing[i].ID == blockID {
			target = &existing[i]
			break
		}
	}
	if target == nil {
		return custom_errors.ErrBlockNotFound
	}
	if err = rules.ValidateRemoval(existing, blockID); err != nil {
		s.recordViolation(err)
		return err
	}

	if err = blockRepo.Delete(ctx, postID, blockID); err != nil {
		if errors.Is(err, custom_errors.ErrBlockNotFound) {
			return custom_errors.ErrBlockNotFound
		}
		s.log.Error("Failed to delete block", slog.String("block_id", blockID), slog.String("error", err.Error()))
		return custom_errors.ErrBlockDeleteFailed
	}
	if err = blockRepo.ShiftDown(ctx, postID, target.OrderIndex); err != nil {
		s.log.Error("Failed to close order gap", slog.String("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrBlockReorderFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrBlockDeleteFailed
	}
	txCommitted = true

	s.log.Info("Block deleted", slog.String("post_id", postID), slog.String("block_id", blockID))
	s.publish(ctx, ports.SubjectBlockDeleted, target, actor)
	return nil
}

// lockOwnedPost locks the post row for the rest of the transaction and
// checks that actor may edit it.
func (s *BlockService) lockOwnedPost(ctx context.Context, tx postgres.Transaction, actor *model.Principal, postID string) (*model.Post, error) {
	post, err := tx.PostRepository().LockByID(ctx, postID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to lock post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if post.AuthorID != actor.UserID && !actor.HasRole(model.RoleAdmin) {
		s.log.Warn("Block edit forbidden", slog.String("post_id", postID), slog.String("user_id", actor.UserID))
		return nil, custom_errors.ErrForbidden
	}
	return post, nil
}

func (s *BlockService) checkImageReference(ctx context.Context, tx postgres.Transaction, content model.Content) error {
	image, ok := content.(model.ImageContent)
	if !ok {
		return nil
	}
	_, err := tx.ImageRepository().GetByID(ctx, strings.TrimSpace(image.ImageID))
	if err != nil {
		if errors.Is(err, custom_errors.ErrImageNotFound) {
			violation := &rules.ViolationError{Rule: rules.RuleContent, Err: custom_errors.ErrImageNotFound}
			s.recordViolation(violation)
			return violation
		}
		s.log.Error("Failed to look up image", slog.String("image_id", image.ImageID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (s *BlockService) recordViolation(err error) {
	var violation *rules.ViolationError
	if errors.As(err, &violation) {
		s.metrics.IncrementValidationFailures(string(violation.Rule))
	}
}

func (s *BlockService) rollback(ctx context.Context, tx postgres.Transaction) {
	if err := tx.Rollback(ctx); err != nil {
		if !strings.Contains(err.Error(), "tx is closed") {
			s.log.Error("Failed to rollback transaction", slog.String("error", err.Error()))
		} else {
			s.log.Debug("Transaction already closed during rollback", slog.String("error", err.Error()))
		}
	}
}

func (s *BlockService) publish(ctx context.Context, subject string, block *model.Block, actor *model.Principal) {
	event := model.BlockEvent{
		PostID:     block.PostID,
		BlockID:    block.ID,
		Type:       block.Type,
		OrderIndex: block.OrderIndex,
		ActorID:    actor.UserID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, subject, event); err != nil {
		s.log.Warn("Failed to publish block event", slog.String("subject", subject), slog.String("block_id", block.ID), slog.String("error", err.Error()))
	}
}
