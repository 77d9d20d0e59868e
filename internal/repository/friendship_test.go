package repository

import (
	"context"
	"errors"
	"testing"

	"flick/internal/models"
)

func TestFriendshipCreateNormalizesPairOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	edge := &models.Friendship{UserAID: 9, UserBID: 3, RequestedByID: 9, Status: models.FriendshipStatusPending}
	if err := repo.Create(ctx, edge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edge.UserAID != 3 || edge.UserBID != 9 {
		t.Fatalf("expected canonical order (3,9), got (%d,%d)", edge.UserAID, edge.UserBID)
	}
}

func TestFriendshipCreateReversedPairConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	first := &models.Friendship{UserAID: 1, UserBID: 2, RequestedByID: 1, Status: models.FriendshipStatusPending}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same unordered pair, opposite insertion order: must hit the unique
	// index, not create a second row.
	second := &models.Friendship{UserAID: 2, UserBID: 1, RequestedByID: 2, Status: models.FriendshipStatusPending}
	err := repo.Create(ctx, second)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict {
		t.Fatalf("expected conflict app error, got %#v", err)
	}

	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single edge row, got %d", count)
	}
}

func TestFriendshipCreateSelfEdgeRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)

	err := repo.Create(context.Background(), &models.Friendship{UserAID: 4, UserBID: 4, RequestedByID: 4})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFriendshipGetByPairEitherOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	edge := &models.Friendship{UserAID: 7, UserBID: 2, RequestedByID: 7, Status: models.FriendshipStatusPending}
	if err := repo.Create(ctx, edge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	forward, err := repo.GetByPair(ctx, 2, 7)
	if err != nil || forward == nil {
		t.Fatalf("expected edge for (2,7), got %v / %v", forward, err)
	}
	backward, err := repo.GetByPair(ctx, 7, 2)
	if err != nil || backward == nil {
		t.Fatalf("expected edge for (7,2), got %v / %v", backward, err)
	}
	if forward.ID != backward.ID {
		t.Fatalf("expected same row both orders, got %d vs %d", forward.ID, backward.ID)
	}
}

func TestFriendshipGetByPairMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)

	edge, err := repo.GetByPair(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edge != nil {
		t.Fatalf("expected nil for missing pair, got %#v", edge)
	}
}

func TestFriendshipAcceptedFriendIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	accepted := &models.Friendship{UserAID: 1, UserBID: 5, RequestedByID: 5, Status: models.FriendshipStatusAccepted}
	pending := &models.Friendship{UserAID: 1, UserBID: 6, RequestedByID: 1, Status: models.FriendshipStatusPending}
	other := &models.Friendship{UserAID: 2, UserBID: 3, RequestedByID: 2, Status: models.FriendshipStatusAccepted}
	for _, e := range []*models.Friendship{accepted, pending, other} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ids, err := repo.AcceptedFriendIDs(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 5 {
		t.Fatalf("expected accepted friends [5], got %v", ids)
	}
}

func TestFriendshipDeleteAllowsReRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	edge := &models.Friendship{UserAID: 1, UserBID: 2, RequestedByID: 1, Status: models.FriendshipStatusPending}
	if err := repo.Create(ctx, edge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, edge.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Declined means gone: the same pair can be requested again at once.
	again := &models.Friendship{UserAID: 2, UserBID: 1, RequestedByID: 2, Status: models.FriendshipStatusPending}
	if err := repo.Create(ctx, again); err != nil {
		t.Fatalf("expected re-request to succeed, got %v", err)
	}
}

func TestFriendshipUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	edge := &models.Friendship{UserAID: 1, UserBID: 2, RequestedByID: 1, Status: models.FriendshipStatusPending}
	if err := repo.Create(ctx, edge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.UpdateStatus(ctx, edge.ID, models.FriendshipStatusAccepted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, edge.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FriendshipStatusAccepted {
		t.Fatalf("expected accepted, got %q", got.Status)
	}
}
