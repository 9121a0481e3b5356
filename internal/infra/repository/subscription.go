package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/infra/database/models"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Add(ctx context.Context, subscriberID, targetID int64) error {
	err := r.db.WithContext(ctx).Create(&models.Subscription{
		SubscriberID: subscriberID,
		TargetID:     targetID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Message: "subscription already exists"}
	}
	return err
}

func (r *SubscriptionRepository) Remove(ctx context.Context, subscriberID, targetID int64) error {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND target_id = ?", subscriberID, targetID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "subscription"}
	}
	return nil
}

// SubscribedSet reports which of the given users the viewer is
// subscribed to, in one query.
func (r *SubscriptionRepository) SubscribedSet(ctx context.Context, subscriberID int64, targetIDs []int64) (map[int64]bool, error) {
	result := map[int64]bool{}
	if len(targetIDs) == 0 {
		return result, nil
	}

	var found []int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND target_id IN ?", subscriberID, targetIDs).
		Pluck("target_id", &found).Error
	if err != nil {
		return nil, err
	}

	for _, id := range found {
		result[id] = true
	}
	return result, nil
}

// Targets returns the ids of the users the subscriber follows, ordered
// by when the subscription was made.
func (r *SubscriptionRepository) Targets(ctx context.Context, subscriberID int64) ([]int64, error) {
	var targets []int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Order("id ASC").
		Pluck("target_id", &targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}
