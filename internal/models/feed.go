package models

import "time"

// Feed item kinds.
const (
	FeedItemSwipe = "swipe"
	FeedItemWatch = "watch"
)

// FeedItem is one entry in the activity feed: a friend's want decision or
// watch event, tagged with its kind and joined with display data.
type FeedItem struct {
	ID        uint           `json:"id"`
	Type      string         `json:"type"`
	User      UserSummary    `json:"user"`
	Movie     MovieDisplay   `json:"movie"`
	Reaction  *WatchReaction `json:"reaction,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// WantItem is one want-to-watch entry joined with display data.
type WantItem struct {
	ID       uint         `json:"id"`
	TMDBID   int          `json:"tmdb_id"`
	SwipedAt time.Time    `json:"swiped_at"`
	Movie    MovieDisplay `json:"movie"`
}

// WatchHistoryItem is one watch event joined with display data.
type WatchHistoryItem struct {
	ID         uint           `json:"id"`
	TMDBID     int            `json:"tmdb_id"`
	WatchedAt  time.Time      `json:"watched_at"`
	Reaction   *WatchReaction `json:"reaction,omitempty"`
	Note       string         `json:"note,omitempty"`
	Companions []uint         `json:"companion_ids,omitempty"`
	Movie      MovieDisplay   `json:"movie"`
}
