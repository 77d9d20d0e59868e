package service

import (
	"context"
	"testing"
	"time"

	"flick/internal/models"
)

func newTestFeedService(friends *friendRepoStub, swipes *swipeRepoStub, watches *watchRepoStub) *FeedService {
	return NewFeedService(friends, swipes, watches, noopUserRepo(), testMovieService(noopMovieRepo()))
}

func TestFeedServiceNoFriendsEmptyFeed(t *testing.T) {
	svc := newTestFeedService(noopFriendRepo(), noopSwipeRepo(), noopWatchRepo())

	items, err := svc.BuildFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil feed, got %#v", items)
	}
}

func TestFeedServiceBoundAndOrdering(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	friends := noopFriendRepo()
	friends.acceptedFriendIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{2, 3}, nil
	}

	// 25 swipes and 25 watches with distinct timestamps; the repos apply the
	// per-source window of 20, as the real queries would.
	swipes := noopSwipeRepo()
	swipes.recentWantByFn = func(_ context.Context, _ []uint, limit int) ([]models.Swipe, error) {
		var out []models.Swipe
		for i := 0; i < 25 && len(out) < limit; i++ {
			out = append(out, models.Swipe{
				ID:        uint(i + 1),
				UserID:    2,
				TMDBID:    100 + i,
				Direction: models.SwipeRight,
				SwipedAt:  base.Add(-time.Duration(2*i) * time.Minute),
			})
		}
		return out, nil
	}
	watches := noopWatchRepo()
	watches.recentByFn = func(_ context.Context, _ []uint, limit int) ([]models.Watch, error) {
		var out []models.Watch
		for i := 0; i < 25 && len(out) < limit; i++ {
			out = append(out, models.Watch{
				ID:        uint(i + 1),
				UserID:    3,
				TMDBID:    200 + i,
				WatchedAt: base.Add(-time.Duration(2*i+1) * time.Minute),
			})
		}
		return out, nil
	}

	svc := newTestFeedService(friends, swipes, watches)
	items, err := svc.BuildFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 30 {
		t.Fatalf("expected feed capped at 30, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("feed not strictly descending at index %d", i)
		}
	}

	var swipeCount, watchCount int
	for _, item := range items {
		switch item.Type {
		case models.FeedItemSwipe:
			swipeCount++
		case models.FeedItemWatch:
			watchCount++
		default:
			t.Fatalf("unexpected item type %q", item.Type)
		}
	}
	if swipeCount == 0 || watchCount == 0 {
		t.Fatalf("expected items from both sources, got %d swipes / %d watches", swipeCount, watchCount)
	}
}

func TestFeedServiceResolvesActorSummaries(t *testing.T) {
	friends := noopFriendRepo()
	friends.acceptedFriendIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{5}, nil
	}
	swipes := noopSwipeRepo()
	swipes.recentWantByFn = func(context.Context, []uint, int) ([]models.Swipe, error) {
		return []models.Swipe{{ID: 1, UserID: 5, TMDBID: 42, SwipedAt: time.Now()}}, nil
	}

	svc := newTestFeedService(friends, swipes, noopWatchRepo())
	items, err := svc.BuildFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].User.ID != 5 {
		t.Fatalf("expected actor summary for user 5, got %#v", items[0].User)
	}
	if items[0].Movie.TMDBID != 42 {
		t.Fatalf("expected movie 42 attached, got %#v", items[0].Movie)
	}
}
