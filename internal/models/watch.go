package models

import "time"

// WatchReaction is an optional rating attached to a watch event.
type WatchReaction string

const (
	ReactionLoved WatchReaction = "loved"
	ReactionGood  WatchReaction = "good"
	ReactionMeh   WatchReaction = "meh"
	ReactionHated WatchReaction = "hated"
)

// Valid reports whether the reaction is one of the enumerated values.
func (r WatchReaction) Valid() bool {
	switch r {
	case ReactionLoved, ReactionGood, ReactionMeh, ReactionHated:
		return true
	}
	return false
}

// Watch is one append-only record of a movie actually watched. Rewatches are
// distinct events; nothing here is ever upserted.
type Watch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	TMDBID    int            `gorm:"column:tmdb_id;not null" json:"tmdb_id"`
	WatchedAt time.Time      `json:"watched_at"`
	Reaction  *WatchReaction `gorm:"type:varchar(20)" json:"reaction,omitempty"`
	Note      string         `gorm:"type:text" json:"note,omitempty"`

	Companions []WatchCompanion `gorm:"foreignKey:WatchID;constraint:OnDelete:CASCADE" json:"companions,omitempty"`
}

// TableName specifies the table name for GORM.
func (Watch) TableName() string {
	return "watches"
}

// WatchCompanion links a watch event to a user it was watched with.
// Companion ids are recorded as given, without relationship verification;
// that open-trust policy is deliberate (personal-use deployment).
type WatchCompanion struct {
	WatchID uint `gorm:"primaryKey" json:"watch_id"`
	UserID  uint `gorm:"primaryKey" json:"user_id"`
}

// TableName specifies the table name for GORM.
func (WatchCompanion) TableName() string {
	return "watch_companions"
}
