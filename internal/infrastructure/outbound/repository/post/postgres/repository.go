package post_repository_postgres

import (
	"context"
	"log/slog"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
)

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	now := time.Now().UTC()
	args := pgx.NamedArgs{
		"author_id":  post.AuthorID,
		"title":      post.Title,
		"created_at": now,
		"updated_at": now,
	}
	query := `INSERT INTO posts (author_id, title, created_at, updated_at)
				VALUES (@author_id, @title, @created_at, @updated_at)
				RETURNING id, author_id, title, created_at, updated_at`

	var created model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(&created.ID, &created.AuthorID, &created.Title, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_create", false)
		p.metrics.RecordDatabaseQueryDuration("post_create", time.Since(start))
		p.log.Error("Error creating post", slog.String("author_id", post.AuthorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_create", true)
	p.metrics.RecordDatabaseQueryDuration("post_create", time.Since(start))
	return &created, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return p.get(ctx, "post_get", `SELECT id, author_id, title, created_at, updated_at FROM posts WHERE id = @id`, id)
}

func (p *PostRepository) LockByID(ctx context.Context, id string) (*model.Post, error) {
	return p.get(ctx, "post_lock", `SELECT id, author_id, title, created_at, updated_at FROM posts WHERE id = @id FOR UPDATE`, id)
}

func (p *PostRepository) get(ctx context.Context, queryType, query, id string) (*model.Post, error) {
	start := time.Now()
	args := pgx.NamedArgs{"id": id}

	var post model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(&post.ID, &post.AuthorID, &post.Title, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if db.IsNotFound(err) {
			p.metrics.IncrementDatabaseQueries(queryType, true)
			p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
			p.log.Debug("Post not found by id", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.metrics.IncrementDatabaseQueries(queryType, false)
		p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
		p.log.Error("Error getting post by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries(queryType, true)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
	return &post, nil
}
