package repository

import (
	"context"
	"errors"
	"time"

	"flick/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group registry operations.
type GroupRepository interface {
	CreateWithCreator(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	ListForUser(ctx context.Context, userID uint) ([]models.GroupSummary, error)
	Members(ctx context.Context, groupID uint) ([]models.GroupMemberView, error)
	MemberIDs(ctx context.Context, groupID uint) ([]uint, error)
	IsMember(ctx context.Context, groupID, userID uint) (bool, error)
	AddMember(ctx context.Context, groupID, userID uint) error
	RemoveMember(ctx context.Context, groupID, userID uint) (bool, error)
	Delete(ctx context.Context, groupID uint) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// CreateWithCreator inserts the group and the creator's membership row in one
// transaction, so a group is never observable with zero members.
func (r *groupRepository) CreateWithCreator(ctx context.Context, group *models.Group) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID:  group.ID,
			UserID:   group.CreatedByID,
			JoinedAt: time.Now().UTC(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

// ListForUser returns the groups the user belongs to, each with its live
// member count.
func (r *groupRepository) ListForUser(ctx context.Context, userID uint) ([]models.GroupSummary, error) {
	var summaries []models.GroupSummary
	if err := r.db.WithContext(ctx).
		Model(&models.Group{}).
		Select(`groups.id, groups.name, groups.created_by_id, groups.created_at,
			(SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = groups.id) AS member_count`).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Scan(&summaries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return summaries, nil
}

func (r *groupRepository) Members(ctx context.Context, groupID uint) ([]models.GroupMemberView, error) {
	var members []models.GroupMemberView
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Select("group_members.user_id, group_members.joined_at, users.username, users.name, users.image").
		Joins("LEFT JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.joined_at ASC").
		Scan(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *groupRepository) MemberIDs(ctx context.Context, groupID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uint) error {
	member := models.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("User is already a member")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveMember deletes the membership row. Returns false when the user was
// not a member.
func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the group and cascades membership removal.
func (r *groupRepository) Delete(ctx context.Context, groupID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
