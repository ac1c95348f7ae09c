package postgres

import (
	"context"
	"fmt"

	ports "noders-content-service/internal/domain/ports/output"
	block_repository "noders-content-service/internal/domain/ports/output/block"
	image_repository "noders-content-service/internal/domain/ports/output/image"
	post_repository "noders-content-service/internal/domain/ports/output/post"
	block_repository_postgres "noders-content-service/internal/infrastructure/outbound/repository/block/postgres"
	image_repository_postgres "noders-content-service/internal/infrastructure/outbound/repository/image/postgres"
	post_repository_postgres "noders-content-service/internal/infrastructure/outbound/repository/post/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockery --name UnitOfWork --dir . --output ../../../../../mocks/postgres --outpkg mocks --filename UnitsOfWork.go
type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

//go:generate mockery --name Transaction --dir . --output ../../../../../mocks/postgres --outpkg mocks --filename Transaction.go
type Transaction interface {
	PostRepository() post_repository.Repository
	BlockRepository() block_repository.Repository
	ImageRepository() image_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type PostgresUnitOfWork struct {
	pool    *pgxpool.Pool
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewPostgresUOW(pool *pgxpool.Pool, log ports.Logger, metrics ports.MetricsProvider) UnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log, metrics: metrics}
}

func (uow *PostgresUnitOfWork) Begin(ctx context.Context) (Transaction, error) {
	tx, err := uow.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &PostgresTransaction{tx: tx, log: uow.log, metrics: uow.metrics}, nil
}

type PostgresTransaction struct {
	tx      pgx.Tx
	log     ports.Logger
	metrics ports.MetricsProvider
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) BlockRepository() block_repository.Repository {
	return block_repository_postgres.NewBlockRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) ImageRepository() image_repository.Repository {
	return image_repository_postgres.NewImageRepository(t.tx, t.log, t.metrics)
}
