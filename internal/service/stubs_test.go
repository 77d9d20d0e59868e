package service

import (
	"context"

	"flick/internal/models"
)

type friendRepoStub struct {
	createFn            func(context.Context, *models.Friendship) error
	getByIDFn           func(context.Context, uint) (*models.Friendship, error)
	getByPairFn         func(context.Context, uint, uint) (*models.Friendship, error)
	listForUserFn       func(context.Context, uint) ([]models.Friendship, error)
	acceptedFriendIDsFn func(context.Context, uint) ([]uint, error)
	updateStatusFn      func(context.Context, uint, models.FriendshipStatus) error
	deleteFn            func(context.Context, uint) error
}

func (s *friendRepoStub) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.createFn(ctx, friendship)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	return s.getByPairFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *friendRepoStub) AcceptedFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.acceptedFriendIDsFn(ctx, userID)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, id uint, status models.FriendshipStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:            func(context.Context, *models.Friendship) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.Friendship, error) { return &models.Friendship{}, nil },
		getByPairFn:         func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		listForUserFn:       func(context.Context, uint) ([]models.Friendship, error) { return nil, nil },
		acceptedFriendIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		updateStatusFn:      func(context.Context, uint, models.FriendshipStatus) error { return nil },
		deleteFn:            func(context.Context, uint) error { return nil },
	}
}

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getSummariesFn  func(context.Context, []uint) (map[uint]models.UserSummary, error)
	updateProfileFn func(context.Context, uint, *string, *string) (*models.User, error)
	searchFn        func(context.Context, string, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetSummaries(ctx context.Context, ids []uint) (map[uint]models.UserSummary, error) {
	return s.getSummariesFn(ctx, ids)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, name, image *string) (*models.User, error) {
	return s.updateProfileFn(ctx, id, name, image)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getSummariesFn: func(_ context.Context, ids []uint) (map[uint]models.UserSummary, error) {
			summaries := make(map[uint]models.UserSummary, len(ids))
			for _, id := range ids {
				summaries[id] = models.UserSummary{ID: id}
			}
			return summaries, nil
		},
		updateProfileFn: func(_ context.Context, id uint, _, _ *string) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		searchFn: func(context.Context, string, int) ([]models.User, error) { return nil, nil },
	}
}

type swipeRepoStub struct {
	upsertFn            func(context.Context, *models.Swipe) error
	listWantFn          func(context.Context, uint) ([]models.Swipe, error)
	wantMovieIDsFn      func(context.Context, uint) ([]int, error)
	wantMovieIDsInFn    func(context.Context, uint, []int) ([]int, error)
	groupWantMovieIDsFn func(context.Context, []uint) ([]int, error)
	recentWantByFn      func(context.Context, []uint, int) ([]models.Swipe, error)
}

func (s *swipeRepoStub) Upsert(ctx context.Context, swipe *models.Swipe) error {
	return s.upsertFn(ctx, swipe)
}
func (s *swipeRepoStub) ListWant(ctx context.Context, userID uint) ([]models.Swipe, error) {
	return s.listWantFn(ctx, userID)
}
func (s *swipeRepoStub) WantMovieIDs(ctx context.Context, userID uint) ([]int, error) {
	return s.wantMovieIDsFn(ctx, userID)
}
func (s *swipeRepoStub) WantMovieIDsIn(ctx context.Context, userID uint, movieIDs []int) ([]int, error) {
	return s.wantMovieIDsInFn(ctx, userID, movieIDs)
}
func (s *swipeRepoStub) GroupWantMovieIDs(ctx context.Context, memberIDs []uint) ([]int, error) {
	return s.groupWantMovieIDsFn(ctx, memberIDs)
}
func (s *swipeRepoStub) RecentWantBy(ctx context.Context, userIDs []uint, limit int) ([]models.Swipe, error) {
	return s.recentWantByFn(ctx, userIDs, limit)
}

func noopSwipeRepo() *swipeRepoStub {
	return &swipeRepoStub{
		upsertFn:            func(context.Context, *models.Swipe) error { return nil },
		listWantFn:          func(context.Context, uint) ([]models.Swipe, error) { return nil, nil },
		wantMovieIDsFn:      func(context.Context, uint) ([]int, error) { return nil, nil },
		wantMovieIDsInFn:    func(context.Context, uint, []int) ([]int, error) { return nil, nil },
		groupWantMovieIDsFn: func(context.Context, []uint) ([]int, error) { return nil, nil },
		recentWantByFn:      func(context.Context, []uint, int) ([]models.Swipe, error) { return nil, nil },
	}
}

type watchRepoStub struct {
	createFn     func(context.Context, *models.Watch, []uint) error
	listByUserFn func(context.Context, uint) ([]models.Watch, error)
	recentByFn   func(context.Context, []uint, int) ([]models.Watch, error)
}

func (s *watchRepoStub) Create(ctx context.Context, watch *models.Watch, companionIDs []uint) error {
	return s.createFn(ctx, watch, companionIDs)
}
func (s *watchRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Watch, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *watchRepoStub) RecentBy(ctx context.Context, userIDs []uint, limit int) ([]models.Watch, error) {
	return s.recentByFn(ctx, userIDs, limit)
}

func noopWatchRepo() *watchRepoStub {
	return &watchRepoStub{
		createFn:     func(context.Context, *models.Watch, []uint) error { return nil },
		listByUserFn: func(context.Context, uint) ([]models.Watch, error) { return nil, nil },
		recentByFn:   func(context.Context, []uint, int) ([]models.Watch, error) { return nil, nil },
	}
}

type groupRepoStub struct {
	createWithCreatorFn func(context.Context, *models.Group) error
	getByIDFn           func(context.Context, uint) (*models.Group, error)
	listForUserFn       func(context.Context, uint) ([]models.GroupSummary, error)
	membersFn           func(context.Context, uint) ([]models.GroupMemberView, error)
	memberIDsFn         func(context.Context, uint) ([]uint, error)
	isMemberFn          func(context.Context, uint, uint) (bool, error)
	addMemberFn         func(context.Context, uint, uint) error
	removeMemberFn      func(context.Context, uint, uint) (bool, error)
	deleteFn            func(context.Context, uint) error
}

func (s *groupRepoStub) CreateWithCreator(ctx context.Context, group *models.Group) error {
	return s.createWithCreatorFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.GroupSummary, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *groupRepoStub) Members(ctx context.Context, groupID uint) ([]models.GroupMemberView, error) {
	return s.membersFn(ctx, groupID)
}
func (s *groupRepoStub) MemberIDs(ctx context.Context, groupID uint) ([]uint, error) {
	return s.memberIDsFn(ctx, groupID)
}
func (s *groupRepoStub) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	return s.isMemberFn(ctx, groupID, userID)
}
func (s *groupRepoStub) AddMember(ctx context.Context, groupID, userID uint) error {
	return s.addMemberFn(ctx, groupID, userID)
}
func (s *groupRepoStub) RemoveMember(ctx context.Context, groupID, userID uint) (bool, error) {
	return s.removeMemberFn(ctx, groupID, userID)
}
func (s *groupRepoStub) Delete(ctx context.Context, groupID uint) error {
	return s.deleteFn(ctx, groupID)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createWithCreatorFn: func(context.Context, *models.Group) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.Group, error) { return &models.Group{ID: id}, nil },
		listForUserFn:       func(context.Context, uint) ([]models.GroupSummary, error) { return nil, nil },
		membersFn:           func(context.Context, uint) ([]models.GroupMemberView, error) { return nil, nil },
		memberIDsFn:         func(context.Context, uint) ([]uint, error) { return nil, nil },
		isMemberFn:          func(context.Context, uint, uint) (bool, error) { return true, nil },
		addMemberFn:         func(context.Context, uint, uint) error { return nil },
		removeMemberFn:      func(context.Context, uint, uint) (bool, error) { return true, nil },
		deleteFn:            func(context.Context, uint) error { return nil },
	}
}

type movieRepoStub struct {
	getFn      func(context.Context, int) (*models.Movie, error)
	getByIDsFn func(context.Context, []int) (map[int]models.Movie, error)
	upsertFn   func(context.Context, *models.Movie) error
}

func (s *movieRepoStub) Get(ctx context.Context, tmdbID int) (*models.Movie, error) {
	return s.getFn(ctx, tmdbID)
}
func (s *movieRepoStub) GetByIDs(ctx context.Context, tmdbIDs []int) (map[int]models.Movie, error) {
	return s.getByIDsFn(ctx, tmdbIDs)
}
func (s *movieRepoStub) Upsert(ctx context.Context, movie *models.Movie) error {
	return s.upsertFn(ctx, movie)
}

func noopMovieRepo() *movieRepoStub {
	return &movieRepoStub{
		getFn:      func(context.Context, int) (*models.Movie, error) { return nil, nil },
		getByIDsFn: func(context.Context, []int) (map[int]models.Movie, error) { return map[int]models.Movie{}, nil },
		upsertFn:   func(context.Context, *models.Movie) error { return nil },
	}
}
