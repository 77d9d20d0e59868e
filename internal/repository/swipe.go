package repository

import (
	"context"
	"time"

	"flick/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwipeRepository defines the interface for preference ledger operations.
type SwipeRepository interface {
	Upsert(ctx context.Context, swipe *models.Swipe) error
	ListWant(ctx context.Context, userID uint) ([]models.Swipe, error)
	WantMovieIDs(ctx context.Context, userID uint) ([]int, error)
	WantMovieIDsIn(ctx context.Context, userID uint, movieIDs []int) ([]int, error)
	GroupWantMovieIDs(ctx context.Context, memberIDs []uint) ([]int, error)
	RecentWantBy(ctx context.Context, userIDs []uint, limit int) ([]models.Swipe, error)
}

type swipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

// Upsert records a decision, keyed by (user_id, tmdb_id). A re-swipe
// overwrites direction, context and timestamp in place; the ON CONFLICT
// clause serializes concurrent upserts for the same key into one row
// (last writer wins).
func (r *swipeRepository) Upsert(ctx context.Context, swipe *models.Swipe) error {
	if swipe.SwipedAt.IsZero() {
		swipe.SwipedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "tmdb_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"direction", "context", "swiped_at"}),
		}).
		Create(swipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListWant returns the user's want-to-watch records, oldest decision first.
func (r *swipeRepository) ListWant(ctx context.Context, userID uint) ([]models.Swipe, error) {
	var swipes []models.Swipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND direction = ?", userID, models.SwipeRight).
		Order("swiped_at ASC").
		Find(&swipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swipes, nil
}

func (r *swipeRepository) WantMovieIDs(ctx context.Context, userID uint) ([]int, error) {
	var ids []int
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("user_id = ? AND direction = ?", userID, models.SwipeRight).
		Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// WantMovieIDsIn returns the subset of movieIDs the user wants. Combined with
// WantMovieIDs this gives the pairwise intersection in two indexed queries,
// scaling with the smaller want list rather than either catalog.
func (r *swipeRepository) WantMovieIDsIn(ctx context.Context, userID uint, movieIDs []int) ([]int, error) {
	if len(movieIDs) == 0 {
		return nil, nil
	}
	var ids []int
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("user_id = ? AND direction = ? AND tmdb_id IN ?", userID, models.SwipeRight, movieIDs).
		Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// GroupWantMovieIDs returns movie ids every listed member wants. One grouped
// count over the member set, filtered by count = member count — not a
// per-member diff. The (user_id, tmdb_id) unique index guarantees at most one
// row per member per movie, so COUNT(*) counts distinct members.
func (r *swipeRepository) GroupWantMovieIDs(ctx context.Context, memberIDs []uint) ([]int, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var ids []int
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Select("tmdb_id").
		Where("user_id IN ? AND direction = ?", memberIDs, models.SwipeRight).
		Group("tmdb_id").
		Having("COUNT(*) = ?", len(memberIDs)).
		Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// RecentWantBy returns the most recent want decisions across a set of users,
// newest first, bounded by limit. Feeds the activity feed's swipe window.
func (r *swipeRepository) RecentWantBy(ctx context.Context, userIDs []uint, limit int) ([]models.Swipe, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var swipes []models.Swipe
	if err := r.db.WithContext(ctx).
		Where("user_id IN ? AND direction = ?", userIDs, models.SwipeRight).
		Order("swiped_at DESC").
		Limit(limit).
		Find(&swipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swipes, nil
}
