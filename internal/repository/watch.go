package repository

import (
	"context"
	"time"

	"flick/internal/models"

	"gorm.io/gorm"
)

// WatchRepository defines the interface for watch log operations.
type WatchRepository interface {
	Create(ctx context.Context, watch *models.Watch, companionIDs []uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.Watch, error)
	RecentBy(ctx context.Context, userIDs []uint, limit int) ([]models.Watch, error)
}

type watchRepository struct {
	db *gorm.DB
}

// NewWatchRepository creates a new watch repository
func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

// Create appends one watch event plus one companion row per companion id.
// Event and companions commit atomically.
func (r *watchRepository) Create(ctx context.Context, watch *models.Watch, companionIDs []uint) error {
	if watch.WatchedAt.IsZero() {
		watch.WatchedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(watch).Error; err != nil {
			return err
		}
		for _, companionID := range companionIDs {
			companion := models.WatchCompanion{WatchID: watch.ID, UserID: companionID}
			if err := tx.Create(&companion).Error; err != nil {
				return err
			}
			watch.Companions = append(watch.Companions, companion)
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("Duplicate companion")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *watchRepository) ListByUser(ctx context.Context, userID uint) ([]models.Watch, error) {
	var watches []models.Watch
	if err := r.db.WithContext(ctx).
		Preload("Companions").
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Find(&watches).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return watches, nil
}

// RecentBy returns the most recent watch events across a set of users, newest
// first, bounded by limit. Feeds the activity feed's watch window.
func (r *watchRepository) RecentBy(ctx context.Context, userIDs []uint, limit int) ([]models.Watch, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var watches []models.Watch
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("watched_at DESC").
		Limit(limit).
		Find(&watches).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return watches, nil
}
