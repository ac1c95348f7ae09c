package profile_repository_postgres

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

type ProfileRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewProfileRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *ProfileRepository {
	return &ProfileRepository{db: db, log: log, metrics: metrics}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	start := time.Now()
	query := `SELECT id, full_name, email, role, avatar_url, created_at FROM profiles WHERE id = @id`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if db.IsNotFound(err) {
			r.metrics.IncrementDatabaseQueries("profile_get", true)
			r.metrics.RecordDatabaseQueryDuration("profile_get", time.Since(start))
			r.log.Debug("Profile not found", slog.String("id", id))
			return nil, custom_errors.ErrProfileNotFound
		}
		r.metrics.IncrementDatabaseQueries("profile_get", false)
		r.metrics.RecordDatabaseQueryDuration("profile_get", time.Since(start))
		r.log.Error("Error getting profile", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.metrics.IncrementDatabaseQueries("profile_get", true)
	r.metrics.RecordDatabaseQueryDuration("profile_get", time.Since(start))
	return profile, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	start := time.Now()
	role := profile.Role
	if role == "" {
		role = model.RoleMember
	}
	args := pgx.NamedArgs{
		"id":         profile.ID,
		"full_name":  profile.FullName,
		"email":      profile.Email,
		"role":       role,
		"avatar_url": profile.AvatarURL,
	}
	query := `INSERT INTO profiles (id, full_name, email, role, avatar_url)
				VALUES (@id, @full_name, @email, @role, @avatar_url)
				ON CONFLICT (id) DO UPDATE SET
					full_name = EXCLUDED.full_name,
					email = EXCLUDED.email,
					role = EXCLUDED.role,
					avatar_url = EXCLUDED.avatar_url
				RETURNING id, full_name, email, role, avatar_url, created_at`

	stored, err := scanProfile(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.metrics.IncrementDatabaseQueries("profile_upsert", false)
		r.metrics.RecordDatabaseQueryDuration("profile_upsert", time.Since(start))
		r.log.Error("Error upserting profile", slog.String("id", profile.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.metrics.IncrementDatabaseQueries("profile_upsert", true)
	r.metrics.RecordDatabaseQueryDuration("profile_upsert", time.Since(start))
	return stored, nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var (
		profile model.Profile
		role    string
	)
	if err := row.Scan(&profile.ID, &profile.FullName, &profile.Email, &role, &profile.AvatarURL, &profile.CreatedAt); err != nil {
		return nil, err
	}
	profile.Role = model.Role(role)
	return &profile, nil
}
