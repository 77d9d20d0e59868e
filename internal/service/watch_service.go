package service

import (
	"context"
	"strings"

	"flick/internal/models"
	"flick/internal/repository"
)

// WatchService appends watch events and reads the watch history.
type WatchService struct {
	watchRepo repository.WatchRepository
	movies    *MovieService
}

// NewWatchService returns a new WatchService.
func NewWatchService(watchRepo repository.WatchRepository, movies *MovieService) *WatchService {
	return &WatchService{
		watchRepo: watchRepo,
		movies:    movies,
	}
}

// Log appends one watch event with its companion rows. Companion ids are
// recorded exactly as given, with no friendship or self check. Unlike swipes
// the log is append-only: watching the same movie twice yields two events.
func (s *WatchService) Log(ctx context.Context, userID uint, tmdbID int, companionIDs []uint, reaction *models.WatchReaction, note string) (*models.Watch, error) {
	if tmdbID <= 0 {
		return nil, models.NewValidationError("Movie ID is required")
	}
	if reaction != nil && !reaction.Valid() {
		return nil, models.NewValidationError("Reaction must be one of 'loved', 'good', 'meh', 'hated'")
	}

	watch := &models.Watch{
		UserID:   userID,
		TMDBID:   tmdbID,
		Reaction: reaction,
		Note:     strings.TrimSpace(note),
	}
	if err := s.watchRepo.Create(ctx, watch, companionIDs); err != nil {
		return nil, err
	}
	return watch, nil
}

// History returns the user's watch events, newest first, joined with cached
// metadata.
func (s *WatchService) History(ctx context.Context, userID uint) ([]models.WatchHistoryItem, error) {
	watches, err := s.watchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	movieIDs := make([]int, 0, len(watches))
	for i := range watches {
		movieIDs = append(movieIDs, watches[i].TMDBID)
	}
	displays, err := s.movies.DisplayFor(ctx, movieIDs, false)
	if err != nil {
		return nil, err
	}

	items := make([]models.WatchHistoryItem, 0, len(watches))
	for i := range watches {
		w := &watches[i]
		companionIDs := make([]uint, 0, len(w.Companions))
		for _, companion := range w.Companions {
			companionIDs = append(companionIDs, companion.UserID)
		}
		items = append(items, models.WatchHistoryItem{
			ID:         w.ID,
			TMDBID:     w.TMDBID,
			WatchedAt:  w.WatchedAt,
			Reaction:   w.Reaction,
			Note:       w.Note,
			Companions: companionIDs,
			Movie:      displays[w.TMDBID],
		})
	}
	return items, nil
}
