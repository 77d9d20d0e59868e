package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	MovieKeyPrefix = "movie:%d"
)

const (
	UserTTL = 5 * time.Minute
	// MovieTTL is the hot-layer TTL only; the authoritative staleness window
	// for the movies_cache table is configured separately (days, not minutes).
	MovieTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func MovieKey(tmdbID int) string {
	return fmt.Sprintf(MovieKeyPrefix, tmdbID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops the hot user summary after a profile mutation. Movie
// entries have no counterpart: refreshes overwrite them in place.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
