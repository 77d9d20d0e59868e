package models

import "time"

// MaxGroupNameLength bounds group names after trimming.
const MaxGroupNameLength = 100

// Group is a named collection of users, independent of the friendship graph.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	Members []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

// GroupMember is one (group, user) membership row. Every member has equal
// rights to invite and view matches; only the creator may delete the group.
type GroupMember struct {
	GroupID  uint      `gorm:"primaryKey" json:"group_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM.
func (GroupMember) TableName() string {
	return "group_members"
}

// GroupSummary is a group with its live member count.
type GroupSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	MemberCount int64     `json:"memberCount"`
}

// GroupMemberView is a membership row joined with user display fields.
type GroupMemberView struct {
	UserID   uint      `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
}

// GroupDetails is a group with its full member list.
type GroupDetails struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	CreatedByID uint              `json:"created_by_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Members     []GroupMemberView `json:"members"`
}
