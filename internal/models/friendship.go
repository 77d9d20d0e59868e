package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendshipStatus represents the lifecycle state of a friendship edge.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a friend request awaiting acceptance.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship is one undirected edge between two users. The pair is stored in
// canonical order (UserAID < UserBID) so an unordered pair maps to exactly one
// row; the unique index on (user_a_id, user_b_id) enforces that at the storage
// layer. RequestedByID records who initiated the edge.
type Friendship struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	UserAID       uint             `gorm:"not null;uniqueIndex:idx_friendships_pair,priority:1;index:idx_friendships_user_a" json:"user_a_id"`
	UserBID       uint             `gorm:"not null;uniqueIndex:idx_friendships_pair,priority:2;index:idx_friendships_user_b" json:"user_b_id"`
	Status        FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RequestedByID uint             `gorm:"not null" json:"requested_by_id"`
	CreatedAt     time.Time        `json:"created_at"`

	UserA *User `gorm:"foreignKey:UserAID" json:"-"`
	UserB *User `gorm:"foreignKey:UserBID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Friendship) TableName() string {
	return "friendships"
}

// CanonicalPair returns the two ids with the smaller one first.
func CanonicalPair(x, y uint) (uint, uint) {
	if x < y {
		return x, y
	}
	return y, x
}

// BeforeCreate normalizes the pair into canonical order and rejects self
// edges. Running this in the model keeps every insert path consistent with
// the unique index.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.UserAID == f.UserBID {
		return NewValidationError("Cannot friend yourself")
	}
	f.UserAID, f.UserBID = CanonicalPair(f.UserAID, f.UserBID)
	return nil
}

// Involves reports whether the user is one of the two parties.
func (f *Friendship) Involves(userID uint) bool {
	return f.UserAID == userID || f.UserBID == userID
}

// OtherParty returns the id of the party opposite the viewer.
func (f *Friendship) OtherParty(viewer uint) uint {
	if f.UserAID == viewer {
		return f.UserBID
	}
	return f.UserAID
}

// IsIncomingFor reports whether the edge is a pending request awaiting the
// viewer's decision.
func (f *Friendship) IsIncomingFor(viewer uint) bool {
	return f.Status == FriendshipStatusPending && f.RequestedByID != viewer
}

// FriendshipView is a friendship edge annotated for one viewer.
type FriendshipView struct {
	ID          uint             `json:"id"`
	Status      FriendshipStatus `json:"status"`
	RequestedBy uint             `json:"requested_by_id"`
	CreatedAt   time.Time        `json:"created_at"`
	Friend      UserSummary      `json:"friend"`
	IsIncoming  bool             `json:"isIncoming"`
}
