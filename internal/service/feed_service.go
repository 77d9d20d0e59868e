package service

import (
	"context"
	"sort"

	"flick/internal/models"
	"flick/internal/repository"
)

const (
	// feedSourceWindow bounds how many recent events are pulled per source
	// table before the merge.
	feedSourceWindow = 20
	// feedWindow bounds the merged feed.
	feedWindow = 30
)

// FeedService builds the activity feed: a bounded, time-ordered merge of
// accepted friends' recent want decisions and watch events.
type FeedService struct {
	friendRepo repository.FriendshipRepository
	swipeRepo  repository.SwipeRepository
	watchRepo  repository.WatchRepository
	userRepo   repository.UserRepository
	movies     *MovieService
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	friendRepo repository.FriendshipRepository,
	swipeRepo repository.SwipeRepository,
	watchRepo repository.WatchRepository,
	userRepo repository.UserRepository,
	movies *MovieService,
) *FeedService {
	return &FeedService{
		friendRepo: friendRepo,
		swipeRepo:  swipeRepo,
		watchRepo:  watchRepo,
		userRepo:   userRepo,
		movies:     movies,
	}
}

// BuildFeed fetches a bounded window of recent events per source, resolves
// acting users and movie display data in one batch each, then merges, sorts
// newest-first and truncates. The per-source bound keeps the query cost flat
// regardless of friends' history size.
func (s *FeedService) BuildFeed(ctx context.Context, viewerID uint) ([]models.FeedItem, error) {
	friendIDs, err := s.friendRepo.AcceptedFriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.FeedItem{}, nil
	}

	swipes, err := s.swipeRepo.RecentWantBy(ctx, friendIDs, feedSourceWindow)
	if err != nil {
		return nil, err
	}
	watches, err := s.watchRepo.RecentBy(ctx, friendIDs, feedSourceWindow)
	if err != nil {
		return nil, err
	}

	actorSet := make(map[uint]struct{})
	movieSet := make(map[int]struct{})
	for i := range swipes {
		actorSet[swipes[i].UserID] = struct{}{}
		movieSet[swipes[i].TMDBID] = struct{}{}
	}
	for i := range watches {
		actorSet[watches[i].UserID] = struct{}{}
		movieSet[watches[i].TMDBID] = struct{}{}
	}

	actorIDs := make([]uint, 0, len(actorSet))
	for id := range actorSet {
		actorIDs = append(actorIDs, id)
	}
	summaries, err := cachedUserSummaries(ctx, s.userRepo, actorIDs)
	if err != nil {
		return nil, err
	}

	movieIDs := make([]int, 0, len(movieSet))
	for id := range movieSet {
		movieIDs = append(movieIDs, id)
	}
	displays, err := s.movies.DisplayFor(ctx, movieIDs, false)
	if err != nil {
		return nil, err
	}

	items := make([]models.FeedItem, 0, len(swipes)+len(watches))
	for i := range swipes {
		sw := &swipes[i]
		items = append(items, models.FeedItem{
			ID:        sw.ID,
			Type:      models.FeedItemSwipe,
			User:      summaries[sw.UserID],
			Movie:     displays[sw.TMDBID],
			CreatedAt: sw.SwipedAt,
		})
	}
	for i := range watches {
		w := &watches[i]
		items = append(items, models.FeedItem{
			ID:        w.ID,
			Type:      models.FeedItemWatch,
			User:      summaries[w.UserID],
			Movie:     displays[w.TMDBID],
			Reaction:  w.Reaction,
			CreatedAt: w.WatchedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > feedWindow {
		items = items[:feedWindow]
	}
	return items, nil
}
