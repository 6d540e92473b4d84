package repository

import (
	"context"

	"gorm.io/gorm"

	"zintasa/backend/internal/model"
)

// UserRepository is the account/directory access interface. The lookup
// methods used by login only consider active accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*model.User, error)
	GetActiveGuestByRoom(ctx context.Context, roomNumber string) (*model.User, error)
	ListActiveByEmail(ctx context.Context, email string) ([]model.User, error)
	CountActiveByRole(ctx context.Context, role string) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo builds the GORM UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetActiveByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND is_active", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetActiveGuestByRoom(ctx context.Context, roomNumber string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("room_number = ? AND role = ? AND is_active", roomNumber, model.RoleGuest).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListActiveByEmail(ctx context.Context, email string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active", email).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) CountActiveByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ? AND is_active", role).
		Count(&n).Error
	return n, err
}
