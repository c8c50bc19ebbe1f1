package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/mapper"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles registration, login and the first-login password reset
type AuthService struct {
	userRepo           *repository.UserRepository
	hasher             auth.PasswordHasher
	tokens             *auth.TokenIssuer
	exposeTempPassword bool
	logger             *zap.Logger
	now                func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:           userRepo,
		hasher:             hasher,
		tokens:             tokens,
		exposeTempPassword: cfg.ExposeTemporaryPassword,
		logger:             logger,
		now:                time.Now,
	}
}

// Register creates an active account with a temporary password that must be reset on first login
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	email := repository.NormalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	tempPassword, err := auth.GenerateTemporaryPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	industry := []string{}
	if v := strings.TrimSpace(req.Industry); v != "" {
		industry = []string{v}
	}

	companyType := string(req.UserType)
	if req.UserType == domain.UserTypeManufacturer {
		companyType = "OEM"
	}

	user := &domain.User{
		Email:              email,
		Password:           hash,
		TempPasswordHash:   &hash,
		ForcePasswordReset: true,
		Name:               strings.TrimSpace(req.Name),
		Company:            strings.TrimSpace(req.Company),
		CompanyType:        companyType,
		Phone:              strings.TrimSpace(req.Phone),
		Industry:           industry,
		Certifications:     []string{},
		UserType:           req.UserType,
		ReliabilityScore:   100,
		Status:             domain.UserStatusActive,
	}
	user.ProfileCompletion = domain.BaseProfileCompletion

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("user_type", string(user.UserType)),
	)

	resp := &domain.RegisterResponse{
		Success: true,
		Message: "Account created successfully",
		User:    mapper.ToUserSummaryDTO(user),
	}
	if s.exposeTempPassword {
		resp.TemporaryPassword = tempPassword
	}
	return resp, nil
}

// Login verifies the credentials and issues a token.
// The temporary password keeps working until it is replaced through ForceResetPassword.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Status != domain.UserStatusActive {
		return nil, ErrAccountInactive
	}

	if !s.passwordMatches(user, req.Password) {
		s.logger.Info("login rejected", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	message := "Login successful"
	if user.ForcePasswordReset {
		message = "First login detected. Please reset your password."
	}

	return &domain.TokenResponse{
		Success:            true,
		Token:              token,
		User:               mapper.ToUserSummaryDTO(user),
		ForcePasswordReset: user.ForcePasswordReset,
		Message:            message,
	}, nil
}

func (s *AuthService) passwordMatches(user *domain.User, password string) bool {
	if user.TempPasswordHash != nil && s.hasher.Check(password, *user.TempPasswordHash) {
		return true
	}
	return s.hasher.Check(password, user.Password)
}

// ForceResetPassword replaces the password, drops the temporary one and issues a fresh token
func (s *AuthService) ForceResetPassword(ctx context.Context, req *domain.ForceResetPasswordRequest) (*domain.TokenResponse, error) {
	if len(req.NewPassword) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hash
	user.TempPasswordHash = nil
	user.ForcePasswordReset = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("password reset", zap.String("user_id", user.ID.String()))

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		Success:            true,
		Token:              token,
		User:               mapper.ToUserSummaryDTO(user),
		ForcePasswordReset: false,
		Message:            "Password reset successful",
	}, nil
}

// Check reports whether an account exists for the email
func (s *AuthService) Check(ctx context.Context, email string) (*domain.CheckUserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.CheckUserResponse{Exists: false}, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	force := user.ForcePasswordReset
	return &domain.CheckUserResponse{
		Exists:             true,
		UserType:           user.UserType,
		ForcePasswordReset: &force,
	}, nil
}

// Me returns the caller's account without secret fields
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}
