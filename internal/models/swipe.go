package models

import "time"

// SwipeDirection is a user's stance on a movie. "right" means want to watch,
// "left" means pass.
type SwipeDirection string

const (
	// SwipeRight records a want-to-watch decision.
	SwipeRight SwipeDirection = "right"
	// SwipeLeft records a pass decision.
	SwipeLeft SwipeDirection = "left"
)

// Valid reports whether the direction is one of the two enumerated values.
func (d SwipeDirection) Valid() bool {
	return d == SwipeRight || d == SwipeLeft
}

// Swipe is one user's current decision on one movie. The unique index on
// (user_id, tmdb_id) makes re-swipes an upsert: a later decision overwrites
// direction, context and timestamp in place, never appending a second row.
type Swipe struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_swipes_user_movie,priority:1" json:"user_id"`
	TMDBID    int            `gorm:"column:tmdb_id;not null;uniqueIndex:idx_swipes_user_movie,priority:2" json:"tmdb_id"`
	Direction SwipeDirection `gorm:"type:varchar(10);not null;index" json:"direction"`
	Context   string         `gorm:"size:50;default:'browse'" json:"context"`
	SwipedAt  time.Time      `json:"swiped_at"`
}

// TableName specifies the table name for GORM.
func (Swipe) TableName() string {
	return "swipes"
}
