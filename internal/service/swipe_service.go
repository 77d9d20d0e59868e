package service

import (
	"context"
	"strings"

	"flick/internal/models"
	"flick/internal/repository"
)

// SwipeService records preference decisions and reads the want-to-watch list.
type SwipeService struct {
	swipeRepo repository.SwipeRepository
	movies    *MovieService
}

// NewSwipeService returns a new SwipeService.
func NewSwipeService(swipeRepo repository.SwipeRepository, movies *MovieService) *SwipeService {
	return &SwipeService{
		swipeRepo: swipeRepo,
		movies:    movies,
	}
}

// Record upserts the user's stance on a movie. A re-swipe overwrites the
// previous decision in place; the ledger holds only the current stance, never
// a history.
func (s *SwipeService) Record(ctx context.Context, userID uint, tmdbID int, direction models.SwipeDirection, swipeContext string) error {
	if tmdbID <= 0 {
		return models.NewValidationError("Movie ID is required")
	}
	if !direction.Valid() {
		return models.NewValidationError("Direction must be 'right' or 'left'")
	}

	swipe := &models.Swipe{
		UserID:    userID,
		TMDBID:    tmdbID,
		Direction: direction,
		Context:   strings.TrimSpace(swipeContext),
	}
	return s.swipeRepo.Upsert(ctx, swipe)
}

// ListWantToWatch returns the user's want list, oldest decision first, joined
// with cached metadata. Metadata is display-only here: uncached movies render
// with null fields rather than triggering provider calls.
func (s *SwipeService) ListWantToWatch(ctx context.Context, userID uint) ([]models.WantItem, error) {
	swipes, err := s.swipeRepo.ListWant(ctx, userID)
	if err != nil {
		return nil, err
	}

	movieIDs := make([]int, 0, len(swipes))
	for i := range swipes {
		movieIDs = append(movieIDs, swipes[i].TMDBID)
	}
	displays, err := s.movies.DisplayFor(ctx, movieIDs, false)
	if err != nil {
		return nil, err
	}

	items := make([]models.WantItem, 0, len(swipes))
	for i := range swipes {
		sw := &swipes[i]
		items = append(items, models.WantItem{
			ID:       sw.ID,
			TMDBID:   sw.TMDBID,
			SwipedAt: sw.SwipedAt,
			Movie:    displays[sw.TMDBID],
		})
	}
	return items, nil
}
