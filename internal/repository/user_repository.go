package repository

import (
	"context"
	"strings"
	"time"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail looks the user up by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// Count returns the number of users, optionally restricted to the given types
func (r *UserRepository) Count(ctx context.Context, types ...domain.UserType) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.User{})
	if len(types) > 0 {
		query = query.Where("user_type IN ?", types)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// ListRecent returns the newest accounts first
func (r *UserRepository) ListRecent(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
