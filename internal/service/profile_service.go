package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/mapper"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileService reads and updates the caller's own profile
type ProfileService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewProfileService(userRepo *repository.UserRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// UpdateProfile merges the patch into the stored profile and recomputes profile completion.
// Email, password, user type, status and reputation fields are never writable here.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *domain.UpdateProfileRequest) (*domain.UserDTO, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Company != nil {
		user.Company = strings.TrimSpace(*req.Company)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Industry != nil {
		user.Industry = cleanList(*req.Industry)
	}
	if req.Certifications != nil {
		user.Certifications = cleanList(*req.Certifications)
	}
	if req.ManufacturingCapacity != nil {
		user.ManufacturingCapacity = strings.TrimSpace(*req.ManufacturingCapacity)
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}
	if req.Website != nil {
		user.Website = strings.TrimSpace(*req.Website)
	}

	if user.Name == "" || user.Company == "" {
		return nil, fmt.Errorf("%w: name and company cannot be empty", ErrInvalidInput)
	}

	user.ProfileCompletion = domain.ComputeProfileCompletion(user)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated",
		zap.String("user_id", user.ID.String()),
		zap.Int("profile_completion", user.ProfileCompletion),
	)

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *ProfileService) getUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// cleanList trims entries and drops blanks
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
