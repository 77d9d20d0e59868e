package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"flick/internal/models"
	"flick/internal/tmdb"
)

// testMovieService builds a MovieService whose provider endpoint is
// unreachable; tests exercise cache-only paths.
func testMovieService(movieRepo *movieRepoStub) *MovieService {
	return NewMovieService(movieRepo, tmdb.NewClient("test-key", "http://127.0.0.1:1"), 7*24*time.Hour)
}

func newTestMatchService(swipes *swipeRepoStub, friends *friendRepoStub, groups *groupRepoStub, movies *movieRepoStub, policy MatchPolicy) *MatchService {
	return NewMatchService(swipes, friends, groups, noopUserRepo(), testMovieService(movies), policy)
}

func intersect(t *testing.T, mine, theirs []int) []int {
	t.Helper()
	theirSet := make(map[int]struct{}, len(theirs))
	for _, id := range theirs {
		theirSet[id] = struct{}{}
	}
	var out []int
	for _, id := range mine {
		if _, ok := theirSet[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// wantsByUser wires the stub so each user has a fixed want set and the
// restricted lookup behaves like the real intersection query.
func wantsByUser(t *testing.T, wants map[uint][]int) *swipeRepoStub {
	t.Helper()
	stub := noopSwipeRepo()
	stub.wantMovieIDsFn = func(_ context.Context, userID uint) ([]int, error) {
		return wants[userID], nil
	}
	stub.wantMovieIDsInFn = func(_ context.Context, userID uint, movieIDs []int) ([]int, error) {
		return intersect(t, wants[userID], movieIDs), nil
	}
	return stub
}

func TestMatchServicePairwiseCorrectness(t *testing.T) {
	swipes := wantsByUser(t, map[uint][]int{
		1: {1, 2, 3},
		2: {2, 3, 4},
	})
	svc := newTestMatchService(swipes, noopFriendRepo(), noopGroupRepo(), noopMovieRepo(), MatchPolicy{})

	matches, err := svc.PairwiseMatches(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 || matches[0].TMDBID != 2 || matches[1].TMDBID != 3 {
		t.Fatalf("expected matches {2,3}, got %#v", matches)
	}
}

func TestMatchServicePairwiseSymmetry(t *testing.T) {
	swipes := wantsByUser(t, map[uint][]int{
		1: {10, 20, 30, 40},
		2: {20, 40, 50},
	})
	svc := newTestMatchService(swipes, noopFriendRepo(), noopGroupRepo(), noopMovieRepo(), MatchPolicy{})

	forward, err := svc.PairwiseMatches(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, err := svc.PairwiseMatches(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forward) != len(backward) {
		t.Fatalf("expected symmetric matches, got %d vs %d", len(forward), len(backward))
	}
	for i := range forward {
		if forward[i].TMDBID != backward[i].TMDBID {
			t.Fatalf("expected same movie set both directions, got %#v vs %#v", forward, backward)
		}
	}
}

func TestMatchServicePairwiseEmptyWantList(t *testing.T) {
	swipes := wantsByUser(t, map[uint][]int{
		1: {1, 2, 3},
		2: nil,
	})
	svc := newTestMatchService(swipes, noopFriendRepo(), noopGroupRepo(), noopMovieRepo(), MatchPolicy{})

	matches, err := svc.PairwiseMatches(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("expected empty set, not error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %#v", matches)
	}
}

func TestMatchServicePairwiseSelf(t *testing.T) {
	svc := newTestMatchService(noopSwipeRepo(), noopFriendRepo(), noopGroupRepo(), noopMovieRepo(), MatchPolicy{})
	_, err := svc.PairwiseMatches(context.Background(), 3, 3)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestMatchServicePairwiseFriendshipGate(t *testing.T) {
	friends := noopFriendRepo()
	friends.getByPairFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{Status: models.FriendshipStatusPending}, nil
	}
	svc := newTestMatchService(noopSwipeRepo(), friends, noopGroupRepo(), noopMovieRepo(), MatchPolicy{RequireFriendship: true})

	_, err := svc.PairwiseMatches(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeForbidden {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestMatchServicePairwiseFriendshipGateAccepted(t *testing.T) {
	friends := noopFriendRepo()
	friends.getByPairFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{Status: models.FriendshipStatusAccepted}, nil
	}
	swipes := wantsByUser(t, map[uint][]int{1: {5}, 2: {5}})
	svc := newTestMatchService(swipes, friends, noopGroupRepo(), noopMovieRepo(), MatchPolicy{RequireFriendship: true})

	matches, err := svc.PairwiseMatches(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].TMDBID != 5 {
		t.Fatalf("expected match {5}, got %#v", matches)
	}
}

func TestMatchServiceGroupNonMemberForbidden(t *testing.T) {
	groups := noopGroupRepo()
	groups.isMemberFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := newTestMatchService(noopSwipeRepo(), noopFriendRepo(), groups, noopMovieRepo(), MatchPolicy{})

	_, err := svc.GroupMatches(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeForbidden {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestMatchServiceGroupUsesCurrentMemberSet(t *testing.T) {
	var queried []uint
	groups := noopGroupRepo()
	groups.memberIDsFn = func(context.Context, uint) ([]uint, error) { return []uint{1, 2, 3}, nil }
	swipes := noopSwipeRepo()
	swipes.groupWantMovieIDsFn = func(_ context.Context, memberIDs []uint) ([]int, error) {
		queried = memberIDs
		return []int{2}, nil
	}
	svc := newTestMatchService(swipes, noopFriendRepo(), groups, noopMovieRepo(), MatchPolicy{})

	matches, err := svc.GroupMatches(context.Background(), 1, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queried) != 3 {
		t.Fatalf("expected all 3 members queried, got %v", queried)
	}
	if len(matches) != 1 || matches[0].TMDBID != 2 {
		t.Fatalf("expected match {2}, got %#v", matches)
	}
}

func TestMatchServiceUncachedMovieKeptWithNullDisplay(t *testing.T) {
	swipes := wantsByUser(t, map[uint][]int{1: {7, 8}, 2: {7, 8}})
	movies := noopMovieRepo()
	movies.getByIDsFn = func(context.Context, []int) (map[int]models.Movie, error) {
		return map[int]models.Movie{
			7: {TMDBID: 7, Title: "Cached Movie", CachedAt: time.Now()},
		}, nil
	}
	// FetchMissingMetadata off: uncached id 8 must still appear, with nulls.
	svc := newTestMatchService(swipes, noopFriendRepo(), noopGroupRepo(), movies, MatchPolicy{})

	matches, err := svc.PairwiseMatches(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected both movies kept, got %#v", matches)
	}
	if matches[0].TMDBID != 7 || matches[0].Title == nil || *matches[0].Title != "Cached Movie" {
		t.Fatalf("expected cached display for 7, got %#v", matches[0])
	}
	if matches[1].TMDBID != 8 || matches[1].Title != nil {
		t.Fatalf("expected null display for uncached 8, got %#v", matches[1])
	}
}
