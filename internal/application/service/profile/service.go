package profile_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	profile_repository "noders-content-service/internal/domain/ports/output/profile"
)

type ProfileService struct {
	profileRepo profile_repository.Repository
	log         ports.Logger
}

func NewProfileService(profileRepo profile_repository.Repository, log ports.Logger) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, log: log}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrProfileNotFound) {
			return nil, custom_errors.ErrProfileNotFound
		}
		s.log.Error("Failed to get profile", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return profile, nil
}

func (s *ProfileService) EnsureProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile == nil || strings.TrimSpace(profile.ID) == "" {
		return nil, custom_errors.ErrInvalidInput
	}
	existing, err := s.GetProfile(ctx, profile.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, custom_errors.ErrProfileNotFound) {
		return nil, err
	}

	created, err := s.profileRepo.Upsert(ctx, &model.Profile{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		Role:      model.RoleMember,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		s.log.Error("Failed to create profile", slog.String("user_id", profile.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	s.log.Info("Profile created", slog.String("user_id", created.ID))
	return created, nil
}

func (s *ProfileService) UpdateRole(ctx context.Context, userID string, role model.Role) (*model.Profile, error) {
	if role != model.RoleMember && role != model.RoleAdmin {
		return nil, custom_errors.ErrInvalidInput
	}
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Role = role

	updated, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		s.log.Error("Failed to update profile role", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	s.log.Info("Profile role updated", slog.String("user_id", userID), slog.String("role", string(role)))
	return updated, nil
}
