package service

import (
	"context"
	"strings"

	"flick/internal/models"
	"flick/internal/repository"
	"flick/internal/validation"
)

// GroupService manages the group registry. Groups are independent of the
// friendship graph: any member may add any resolvable user.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Create makes a new group with the creator auto-joined as its first member.
func (s *GroupService) Create(ctx context.Context, creatorID uint, name string) (*models.GroupSummary, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{
		Name:        name,
		CreatedByID: creatorID,
	}
	if err := s.groupRepo.CreateWithCreator(ctx, group); err != nil {
		return nil, err
	}

	return &models.GroupSummary{
		ID:          group.ID,
		Name:        group.Name,
		CreatedByID: group.CreatedByID,
		CreatedAt:   group.CreatedAt,
		MemberCount: 1,
	}, nil
}

// List returns the viewer's groups with live member counts.
func (s *GroupService) List(ctx context.Context, viewerID uint) ([]models.GroupSummary, error) {
	return s.groupRepo.ListForUser(ctx, viewerID)
}

// Details returns the group with its member list. Non-members get NotFound
// rather than Forbidden, so group existence is not leaked.
func (s *GroupService) Details(ctx context.Context, viewerID, groupID uint) (*models.GroupDetails, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.groupRepo.IsMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.NewNotFoundError("Group", groupID)
	}

	members, err := s.groupRepo.Members(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &models.GroupDetails{
		ID:          group.ID,
		Name:        group.Name,
		CreatedByID: group.CreatedByID,
		CreatedAt:   group.CreatedAt,
		Members:     members,
	}, nil
}

// AddMember adds a user to the group, resolved by id or by username. Any
// current member may add; friendship with the target is not required.
func (s *GroupService) AddMember(ctx context.Context, actorID, groupID uint, targetID uint, targetUsername string) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	isMember, err := s.groupRepo.IsMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	if !isMember {
		return models.NewForbiddenError("You are not a member of this group")
	}

	resolvedID, err := s.resolveTarget(ctx, targetID, targetUsername)
	if err != nil {
		return err
	}
	return s.groupRepo.AddMember(ctx, groupID, resolvedID)
}

// resolveTarget turns an id-or-username reference into a user id.
func (s *GroupService) resolveTarget(ctx context.Context, targetID uint, targetUsername string) (uint, error) {
	if targetID != 0 {
		user, err := s.userRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return user.ID, nil
	}

	targetUsername = strings.TrimSpace(targetUsername)
	if targetUsername == "" {
		return 0, models.NewValidationError("A user ID or username is required")
	}
	user, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, models.NewNotFoundError("User", targetUsername)
	}
	return user.ID, nil
}

// Leave removes the actor's own membership. Members can only remove
// themselves; there is no kick.
func (s *GroupService) Leave(ctx context.Context, actorID, groupID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	removed, err := s.groupRepo.RemoveMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Membership", groupID)
	}
	return nil
}

// Delete removes the group and all memberships. Creator only.
func (s *GroupService) Delete(ctx context.Context, actorID, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedByID != actorID {
		return models.NewForbiddenError("Only the group creator can delete the group")
	}
	return s.groupRepo.Delete(ctx, groupID)
}
