package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := models.User{
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		IsStaff:      user.IsStaff,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.User{}, domain.ConflictError{Message: "email or username already taken"}
	}
	if err != nil {
		return domain.User{}, err
	}
	return userToDomain(row), nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, err
	}
	return userToDomain(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, err
	}
	return userToDomain(row), nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	result := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []models.User
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		result = append(result, userToDomain(row))
	}
	return result, nil
}

func userToDomain(row models.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		PasswordHash: row.PasswordHash,
		IsStaff:      row.IsStaff,
	}
}
