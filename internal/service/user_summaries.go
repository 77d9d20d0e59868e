package service

import (
	"context"
	"encoding/json"

	"flick/internal/cache"
	"flick/internal/models"
	"flick/internal/repository"
)

// cachedUserSummaries is a read-through over UserRepository.GetSummaries: a
// per-user Redis hot layer in front of the batch query. Misses are resolved
// in one query and written back with UserTTL; profile mutations invalidate
// the key. With no Redis client every call falls through to the database.
func cachedUserSummaries(ctx context.Context, userRepo repository.UserRepository, ids []uint) (map[uint]models.UserSummary, error) {
	summaries := make(map[uint]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	rdb := cache.GetClient()
	missing := ids
	if rdb != nil {
		missing = make([]uint, 0, len(ids))
		for _, id := range ids {
			raw, err := rdb.Get(ctx, cache.UserKey(id)).Bytes()
			if err != nil {
				missing = append(missing, id)
				continue
			}
			var summary models.UserSummary
			if err := json.Unmarshal(raw, &summary); err != nil {
				missing = append(missing, id)
				continue
			}
			summaries[id] = summary
		}
		if len(missing) == 0 {
			return summaries, nil
		}
	}

	fetched, err := userRepo.GetSummaries(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, summary := range fetched {
		summaries[id] = summary
		if rdb != nil {
			if raw, err := json.Marshal(summary); err == nil {
				rdb.Set(ctx, cache.UserKey(id), raw, cache.UserTTL)
			}
		}
	}
	return summaries, nil
}
