package service

import (
	"context"
	"sort"

	"flick/internal/middleware"
	"flick/internal/models"
	"flick/internal/repository"
)

// MatchPolicy carries the configurable matching behaviors.
type MatchPolicy struct {
	// RequireFriendship gates pairwise matches on an accepted edge.
	RequireFriendship bool
	// FetchMissingMetadata fetches uncached movie metadata inline; when off,
	// uncached matches are returned with null display fields.
	FetchMissingMetadata bool
}

// MatchService computes want-list intersections. Matches are pure reads over
// the preference ledger: nothing is stored, so a changed swipe is reflected by
// the very next computation.
type MatchService struct {
	swipeRepo  repository.SwipeRepository
	friendRepo repository.FriendshipRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	movies     *MovieService
	policy     MatchPolicy
}

// NewMatchService returns a new MatchService.
func NewMatchService(
	swipeRepo repository.SwipeRepository,
	friendRepo repository.FriendshipRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	movies *MovieService,
	policy MatchPolicy,
) *MatchService {
	return &MatchService{
		swipeRepo:  swipeRepo,
		friendRepo: friendRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		movies:     movies,
		policy:     policy,
	}
}

// PairwiseMatches returns the movies both users want. The intersection runs
// as two indexed queries (the counterpart's want ids, then the viewer's want
// rows restricted to that set), so cost scales with want-list size, and the
// result is symmetric in the two users.
func (s *MatchService) PairwiseMatches(ctx context.Context, viewerID, otherID uint) ([]models.MovieDisplay, error) {
	if viewerID == otherID {
		return nil, models.NewValidationError("Cannot match against yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	if s.policy.RequireFriendship {
		edge, err := s.friendRepo.GetByPair(ctx, viewerID, otherID)
		if err != nil {
			return nil, err
		}
		if edge == nil || edge.Status != models.FriendshipStatusAccepted {
			return nil, models.NewForbiddenError("Matching requires an accepted friendship")
		}
	}

	otherWants, err := s.swipeRepo.WantMovieIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}
	shared, err := s.swipeRepo.WantMovieIDsIn(ctx, viewerID, otherWants)
	if err != nil {
		return nil, err
	}
	middleware.MatchComputations.WithLabelValues("pairwise").Inc()

	return s.toDisplays(ctx, shared)
}

// GroupMatches returns the movies every current member of the group wants.
// Only members may query.
func (s *MatchService) GroupMatches(ctx context.Context, viewerID, groupID uint) ([]models.MovieDisplay, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	isMember, err := s.groupRepo.IsMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.NewForbiddenError("You are not a member of this group")
	}

	memberIDs, err := s.groupRepo.MemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	shared, err := s.swipeRepo.GroupWantMovieIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	middleware.MatchComputations.WithLabelValues("group").Inc()

	return s.toDisplays(ctx, shared)
}

// toDisplays joins matched movie ids with cached metadata, in stable id order.
// A movie missing from the cache is never dropped from the result.
func (s *MatchService) toDisplays(ctx context.Context, movieIDs []int) ([]models.MovieDisplay, error) {
	displays, err := s.movies.DisplayFor(ctx, movieIDs, s.policy.FetchMissingMetadata)
	if err != nil {
		return nil, err
	}

	sort.Ints(movieIDs)
	result := make([]models.MovieDisplay, 0, len(movieIDs))
	for _, id := range movieIDs {
		result = append(result, displays[id])
	}
	return result, nil
}
