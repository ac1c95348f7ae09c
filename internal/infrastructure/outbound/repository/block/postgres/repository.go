package block_repository_postgres

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
)

const blockColumns = `id, post_id, type, content, order_index, created_at, updated_at`

type BlockRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewBlockRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *BlockRepository {
	return &BlockRepository{db: db, log: log, metrics: metrics}
}

func (r *BlockRepository) record(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *BlockRepository) Create(ctx context.Context, block *model.CreateBlockDTO) (*model.Block, error) {
	start := time.Now()
	content, err := json.Marshal(block.Content)
	if err != nil {
		r.log.Error("Failed to encode block content", slog.String("post_id", block.PostID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrBlockCreateFailed
	}

	now := time.Now().UTC()
	args := pgx.NamedArgs{
		"post_id":     block.PostID,
		"type":        block.Type,
		"content":     content,
		"order_index": block.OrderIndex,
		"created_at":  now,
		"updated_at":  now,
	}
	query := `
		INSERT INTO post_blocks (post_id, type, content, order_index, created_at, updated_at)
		VALUES (@post_id, @type, @content, @order_index, @created_at, @updated_at)
		RETURNING ` + blockColumns

	created, err := scanBlock(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.record("block_create", start, false)
		r.log.Error("Error creating block", slog.String("post_id", block.PostID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("block_create", start, true)
	return created, nil
}

func (r *BlockRepository) GetByID(ctx context.Context, postID, id string) (*model.Block, error) {
	start := time.Now()
	args := pgx.NamedArgs{"id": id, "post_id": postID}
	query := `SELECT ` + blockColumns + ` FROM post_blocks WHERE id = @id AND post_id = @post_id`

	block, err := scanBlock(r.db.QueryRow(ctx, query, args))
	if err != nil {
		if db.IsNotFound(err) {
			r.record("block_get", start, true)
			r.log.Debug("Block not found by id", slog.String("id", id), slog.String("post_id", postID))
			return nil, custom_errors.ErrBlockNotFound
		}
		r.record("block_get", start, false)
		r.log.Error("Error getting block by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("block_get", start, true)
	return block, nil
}

func (r *BlockRepository) ListByPost(ctx context.Context, postID string) ([]model.Block, error) {
	start := time.Now()
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT ` + blockColumns + ` FROM post_blocks WHERE post_id = @post_id ORDER BY order_index ASC`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.record("block_list", start, false)
		r.log.Error("Error listing blocks", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	blocks := make([]model.Block, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			r.record("block_list", start, false)
			r.log.Error("Error scanning block during ListByPost", slog.String("post_id", postID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		blocks = append(blocks, *block)
	}

	if err = rows.Err(); err != nil {
		r.record("block_list", start, false)
		r.log.Error("Error iterating rows during ListByPost", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("block_list", start, true)
	return blocks, nil
}

func (r *BlockRepository) UpdateContent(ctx context.Context, postID, id string, content model.Content) (*model.Block, error) {
	start := time.Now()
	encoded, err := json.Marshal(content)
	if err != nil {
		r.log.Error("Failed to encode block content", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrBlockUpdateFailed
	}

	args := pgx.NamedArgs{
		"id":         id,
		"post_id":    postID,
		"content":    encoded,
		"updated_at": time.Now().UTC(),
	}
	query := `UPDATE post_blocks SET content = @content, updated_at = @updated_at
				WHERE id = @id AND post_id = @post_id
				RETURNING ` + blockColumns

	updated, err := scanBlock(r.db.QueryRow(ctx, query, args))
	if err != nil {
		if db.IsNotFound(err) {
			r.record("block_update", start, true)
			r.log.Debug("Block not found during UpdateContent", slog.String("id", id))
			return nil, custom_errors.ErrBlockNotFound
		}
		r.record("block_update", start, false)
		r.log.Error("Error updating block", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("block_update", start, true)
	return updated, nil
}

func (r *BlockRepository) Delete(ctx context.Context, postID, id string) error {
	start := time.Now()
	args := pgx.NamedArgs{"id": id, "post_id": postID}
	result, err := r.db.Exec(ctx, `DELETE FROM post_blocks WHERE id = @id AND post_id = @post_id`, args)
	if err != nil {
		r.record("block_delete", start, false)
		r.log.Error("Error deleting block", slog.String("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	r.record("block_delete", start, true)
	if result.RowsAffected() == 0 {
		return custom_errors.ErrBlockNotFound
	}
	return nil
}

// ShiftDown closes the gap left at fromIndex. The unique order constraint is
// deferred, so intermediate duplicates inside the transaction are fine.
func (r *BlockRepository) ShiftDown(ctx context.Context, postID string, fromIndex int) error {
	start := time.Now()
	args := pgx.NamedArgs{"post_id": postID, "from_index": fromIndex}
	query := `UPDATE post_blocks SET order_index = order_index - 1
				WHERE post_id = @post_id AND order_index > @from_index`
	if _, err := r.db.Exec(ctx, query, args); err != nil {
		r.record("block_shift", start, false)
		r.log.Error("Error shifting block order", slog.String("post_id", postID), slog.Int("from_index", fromIndex), slog.String("error", err.Error()))
		return custom_errors.ErrBlockReorderFailed
	}
	r.record("block_shift", start, true)
	return nil
}

func scanBlock(row pgx.Row) (*model.Block, error) {
	var (
		block   model.Block
		raw     []byte
		rawType string
	)
	if err := row.Scan(&block.ID, &block.PostID, &rawType, &raw, &block.OrderIndex, &block.CreatedAt, &block.UpdatedAt); err != nil {
		return nil, err
	}
	block.Type = model.BlockType(rawType)
	content, err := model.DecodeContent(block.Type, raw)
	if err != nil {
		return nil, err
	}
	block.Content = content
	return &block, nil
}
