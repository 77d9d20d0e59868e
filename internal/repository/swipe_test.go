package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"flick/internal/models"
)

func TestSwipeUpsertSingleRowPerUserMovie(t *testing.T) {
	db := newTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := context.Background()

	first := &models.Swipe{UserID: 1, TMDBID: 550, Direction: models.SwipeRight, Context: "browse"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-swipe flips the decision in place.
	second := &models.Swipe{UserID: 1, TMDBID: 550, Direction: models.SwipeLeft, Context: "friend-list"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rows []models.Swipe
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row after re-swipe, got %d", len(rows))
	}
	if rows[0].Direction != models.SwipeLeft || rows[0].Context != "friend-list" {
		t.Fatalf("expected overwritten decision, got %#v", rows[0])
	}
}

func TestSwipeUpsertSetsSwipedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewSwipeRepository(db)

	swipe := &models.Swipe{UserID: 1, TMDBID: 603, Direction: models.SwipeRight}
	if err := repo.Upsert(context.Background(), swipe); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swipe.SwipedAt.IsZero() {
		t.Fatal("expected swiped_at defaulted")
	}
}

func TestSwipeListWantExcludesPasses(t *testing.T) {
	db := newTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Swipe{
		{UserID: 1, TMDBID: 10, Direction: models.SwipeRight, SwipedAt: base},
		{UserID: 1, TMDBID: 11, Direction: models.SwipeLeft, SwipedAt: base.Add(time.Minute)},
		{UserID: 1, TMDBID: 12, Direction: models.SwipeRight, SwipedAt: base.Add(2 * time.Minute)},
		{UserID: 2, TMDBID: 10, Direction: models.SwipeRight, SwipedAt: base},
	}
	for i := range seed {
		if err := repo.Upsert(ctx, &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want, err := repo.ListWant(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(want) != 2 || want[0].TMDBID != 10 || want[1].TMDBID != 12 {
		t.Fatalf("expected want list [10 12] oldest first, got %#v", want)
	}
}

func TestSwipeWantMovieIDsIn(t *testing.T) {
	db := newTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3} {
		if err := repo.Upsert(ctx, &models.Swipe{UserID: 5, TMDBID: id, Direction: models.SwipeRight}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := repo.Upsert(ctx, &models.Swipe{UserID: 5, TMDBID: 4, Direction: models.SwipeLeft}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err := repo.WantMovieIDsIn(ctx, 5, []int{2, 3, 4, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Ints(ids)
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Fatalf("expected [2 3], got %v", ids)
	}

	empty, err := repo.WantMovieIDsIn(ctx, 5, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result for empty filter, got %v / %v", empty, err)
	}
}

func TestSwipeGroupWantMovieIDsRequiresAllMembers(t *testing.T) {
	db := newTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := context.Background()

	// Movie 100: all three want it. Movie 200: only two. Movie 300: one,
	// plus a left swipe from another member.
	seed := []models.Swipe{
		{UserID: 1, TMDBID: 100, Direction: models.SwipeRight},
		{UserID: 2, TMDBID: 100, Direction: models.SwipeRight},
		{UserID: 3, TMDBID: 100, Direction: models.SwipeRight},
		{UserID: 1, TMDBID: 200, Direction: models.SwipeRight},
		{UserID: 2, TMDBID: 200, Direction: models.SwipeRight},
		{UserID: 1, TMDBID: 300, Direction: models.SwipeRight},
		{UserID: 2, TMDBID: 300, Direction: models.SwipeLeft},
	}
	for i := range seed {
		if err := repo.Upsert(ctx, &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ids, err := repo.GroupWantMovieIDs(ctx, []uint{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 100 {
		t.Fatalf("expected unanimous movie [100], got %v", ids)
	}

	// Shrinking the member set changes the threshold.
	ids, err = repo.GroupWantMovieIDs(ctx, []uint{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Ints(ids)
	if len(ids) != 2 || ids[0] != 100 || ids[1] != 200 {
		t.Fatalf("expected [100 200] for pair, got %v", ids)
	}
}

func TestSwipeRecentWantByHonorsLimitAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s := models.Swipe{UserID: 1, TMDBID: 100 + i, Direction: models.SwipeRight, SwipedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Upsert(ctx, &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recent, err := repo.RecentWantBy(ctx, []uint{1}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(recent))
	}
	if recent[0].TMDBID != 104 || recent[2].TMDBID != 102 {
		t.Fatalf("expected newest first, got %#v", recent)
	}

	none, err := repo.RecentWantBy(ctx, nil, 3)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty result for no users, got %v / %v", none, err)
	}
}
