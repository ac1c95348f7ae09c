package image_repository_postgres

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

const imageColumns = `id, owner_id, storage_key, public_url, filename, content_type, size_bytes, usage, alt_text, created_at`

type ImageRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewImageRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *ImageRepository {
	return &ImageRepository{db: db, log: log, metrics: metrics}
}

func (r *ImageRepository) record(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *ImageRepository) Create(ctx context.Context, image *model.Image) (*model.Image, error) {
	start := time.Now()
	createdAt := image.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	args := pgx.NamedArgs{
		"id":           image.ID,
		"owner_id":     image.OwnerID,
		"storage_key":  image.StorageKey,
		"public_url":   image.PublicURL,
		"filename":     image.Filename,
		"content_type": image.ContentType,
		"size_bytes":   image.SizeBytes,
		"usage":        image.Usage,
		"alt_text":     image.AltText,
		"created_at":   createdAt,
	}
	query := `INSERT INTO images (` + imageColumns + `)
				VALUES (@id, @owner_id, @storage_key, @public_url, @filename, @content_type, @size_bytes, @usage, @alt_text, @created_at)
				RETURNING ` + imageColumns

	created, err := scanImage(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.record("image_create", start, false)
		r.log.Error("Error creating image record", slog.String("owner_id", image.OwnerID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("image_create", start, true)
	return created, nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*model.Image, error) {
	start := time.Now()
	args := pgx.NamedArgs{"id": id}
	image, err := scanImage(r.db.QueryRow(ctx, `SELECT `+imageColumns+` FROM images WHERE id = @id`, args))
	if err != nil {
		if db.IsNotFound(err) {
			r.record("image_get", start, true)
			return nil, custom_errors.ErrImageNotFound
		}
		r.record("image_get", start, false)
		r.log.Error("Error getting image by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("image_get", start, true)
	return image, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	result, err := r.db.Exec(ctx, `DELETE FROM images WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		r.record("image_delete", start, false)
		r.log.Error("Error deleting image", slog.String("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	r.record("image_delete", start, true)
	if result.RowsAffected() == 0 {
		return custom_errors.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) ListUnreferenced(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Image, error) {
	start := time.Now()
	args := pgx.NamedArgs{
		"usage":          model.ImageUsagePostBlock,
		"created_before": createdBefore,
		"limit":          limit,
	}
	query := `SELECT ` + imageColumns + ` FROM images i
				WHERE i.usage = @usage AND i.created_at < @created_before
				AND NOT EXISTS (
					SELECT 1 FROM post_blocks b
					WHERE b.type = 'image' AND b.content->>'image_id' = i.id::text
				)
				ORDER BY i.created_at ASC
				LIMIT @limit`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.record("image_list_unreferenced", start, false)
		r.log.Error("Error listing unreferenced images", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var images []*model.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			r.record("image_list_unreferenced", start, false)
			r.log.Error("Error scanning unreferenced image", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		images = append(images, image)
	}
	if err = rows.Err(); err != nil {
		r.record("image_list_unreferenced", start, false)
		return nil, custom_errors.ErrDatabaseQuery
	}
	r.record("image_list_unreferenced", start, true)
	return images, nil
}

func scanImage(row pgx.Row) (*model.Image, error) {
	var (
		image model.Image
		usage string
	)
	err := row.Scan(&image.ID, &image.OwnerID, &image.StorageKey, &image.PublicURL, &image.Filename,
		&image.ContentType, &image.SizeBytes, &usage, &image.AltText, &image.CreatedAt)
	if err != nil {
		return nil, err
	}
	image.Usage = model.ImageUsage(usage)
	return &image, nil
}
