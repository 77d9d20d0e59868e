// Package service implements business rules over the repositories.
package service

import (
	"context"
	"errors"

	"flick/internal/models"
	"flick/internal/repository"
)

// FriendService implements the friendship state machine:
// none -> pending -> accepted, with pending -> none on decline.
type FriendService struct {
	friendRepo repository.FriendshipRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest creates a pending edge from the requester to the target user.
// The pair is stored canonically, so Request(X,Y) and Request(Y,X) contend
// for the same row; the second caller gets Conflict carrying the existing
// edge's status.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error) {
	if requesterID == targetID {
		return nil, models.NewValidationError("Cannot friend yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetByPair(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Friendship already exists").
			WithMeta("status", existing.Status)
	}

	friendship := &models.Friendship{
		UserAID:       requesterID,
		UserBID:       targetID,
		Status:        models.FriendshipStatusPending,
		RequestedByID: requesterID,
	}
	if createErr := s.friendRepo.Create(ctx, friendship); createErr != nil {
		// A concurrent request for the same pair won the insert race; report
		// the surviving edge's status, same as the read-then-write path.
		var appErr *models.AppError
		if errors.As(createErr, &appErr) && appErr.Code == models.CodeConflict {
			if racing, pairErr := s.friendRepo.GetByPair(ctx, requesterID, targetID); pairErr == nil && racing != nil {
				return nil, models.NewConflictError("Friendship already exists").
					WithMeta("status", racing.Status)
			}
		}
		return nil, createErr
	}

	return friendship, nil
}

// Accept transitions a pending edge to accepted. Only the non-requesting
// party may accept.
func (s *FriendService) Accept(ctx context.Context, actorID, friendshipID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	if !friendship.Involves(actorID) {
		return nil, models.NewForbiddenError("You are not a party to this friendship")
	}
	if friendship.RequestedByID == actorID {
		return nil, models.NewInvalidStateError("Cannot accept your own request")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewInvalidStateError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, friendshipID, models.FriendshipStatusAccepted); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, friendshipID)
}

// Decline removes a pending edge entirely. Either party may decline (the
// requester's decline is a cancel). No rejected state is retained, so the
// pair can be re-requested immediately afterwards.
func (s *FriendService) Decline(ctx context.Context, actorID, friendshipID uint) error {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}

	if !friendship.Involves(actorID) {
		return models.NewForbiddenError("You are not a party to this friendship")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return models.NewInvalidStateError("Friend request is not pending")
	}

	return s.friendRepo.Delete(ctx, friendshipID)
}

// ListRelationships returns every edge touching the viewer, annotated with
// the other party's summary and whether the edge is an incoming pending
// request.
func (s *FriendService) ListRelationships(ctx context.Context, viewerID uint) ([]models.FriendshipView, error) {
	friendships, err := s.friendRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	otherIDs := make([]uint, 0, len(friendships))
	for i := range friendships {
		otherIDs = append(otherIDs, friendships[i].OtherParty(viewerID))
	}
	summaries, err := cachedUserSummaries(ctx, s.userRepo, otherIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.FriendshipView, 0, len(friendships))
	for i := range friendships {
		f := &friendships[i]
		views = append(views, models.FriendshipView{
			ID:          f.ID,
			Status:      f.Status,
			RequestedBy: f.RequestedByID,
			CreatedAt:   f.CreatedAt,
			Friend:      summaries[f.OtherParty(viewerID)],
			IsIncoming:  f.IsIncomingFor(viewerID),
		})
	}
	return views, nil
}

// AreFriends reports whether an accepted edge exists between the two users.
func (s *FriendService) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	friendship, err := s.friendRepo.GetByPair(ctx, userID1, userID2)
	if err != nil {
		return false, err
	}
	return friendship != nil && friendship.Status == models.FriendshipStatusAccepted, nil
}
