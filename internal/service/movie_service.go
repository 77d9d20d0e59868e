package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"flick/internal/cache"
	"flick/internal/middleware"
	"flick/internal/models"
	"flick/internal/repository"
	"flick/internal/tmdb"
)

// MovieService maintains the movie metadata cache. The cache accelerates
// display only; movie identity is always the external TMDB id, and a cache
// miss never blocks a ledger or match operation.
type MovieService struct {
	movieRepo repository.MovieRepository
	tmdb      *tmdb.Client
	ttl       time.Duration
}

// NewMovieService returns a new MovieService. ttl is the staleness window for
// cached rows.
func NewMovieService(movieRepo repository.MovieRepository, client *tmdb.Client, ttl time.Duration) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		tmdb:      client,
		ttl:       ttl,
	}
}

// GetCached returns the cached row regardless of staleness, or nil on a miss.
// It consults the Redis hot layer before the database.
func (s *MovieService) GetCached(ctx context.Context, tmdbID int) (*models.Movie, error) {
	if hot := s.hotGet(ctx, tmdbID); hot != nil {
		middleware.MovieCacheLookups.WithLabelValues("hit").Inc()
		return hot, nil
	}

	movie, err := s.movieRepo.Get(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		middleware.MovieCacheLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if movie.StaleAfter(s.ttl) {
		middleware.MovieCacheLookups.WithLabelValues("stale").Inc()
	} else {
		middleware.MovieCacheLookups.WithLabelValues("hit").Inc()
		s.hotSet(ctx, movie)
	}
	return movie, nil
}

// Refresh fetches current metadata from the provider and upserts the cache
// row. Returns an upstream error when the provider is unreachable.
func (s *MovieService) Refresh(ctx context.Context, tmdbID int) (*models.Movie, error) {
	detail, err := s.tmdb.GetMovieDetail(ctx, tmdbID)
	if err != nil {
		middleware.TMDBFetches.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("Movie metadata provider unavailable", err)
	}
	middleware.TMDBFetches.WithLabelValues("ok").Inc()

	movie := &models.Movie{
		TMDBID:      detail.ID,
		Title:       detail.Title,
		PosterPath:  detail.PosterPath,
		Overview:    detail.Overview,
		ReleaseYear: tmdb.ReleaseYear(detail.ReleaseDate),
		Runtime:     detail.Runtime,
		CachedAt:    time.Now().UTC(),
	}
	genreIDs := make([]int, len(detail.Genres))
	for i, g := range detail.Genres {
		genreIDs[i] = g.ID
	}
	movie.SetGenreIDs(genreIDs)

	if err := s.movieRepo.Upsert(ctx, movie); err != nil {
		return nil, err
	}
	s.hotSet(ctx, movie)
	return movie, nil
}

// Details is the read path for GET /movies/:id: serve fresh cache, refresh
// when stale or missing. A failed refresh falls back to the stale row if one
// exists; with no row at all the upstream error surfaces to the caller.
func (s *MovieService) Details(ctx context.Context, tmdbID int) (*models.Movie, error) {
	cached, err := s.GetCached(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if cached != nil && !cached.StaleAfter(s.ttl) {
		return cached, nil
	}

	fresh, refreshErr := s.Refresh(ctx, tmdbID)
	if refreshErr != nil {
		if cached != nil {
			slog.WarnContext(ctx, "serving stale movie metadata", "tmdb_id", tmdbID, "error", refreshErr)
			return cached, nil
		}
		return nil, refreshErr
	}
	return fresh, nil
}

// DisplayFor batch-resolves display data for a set of movie ids. Every input
// id is present in the result: ids with no cache row render as null display
// fields. When fetchMissing is set, uncached ids are fetched from the provider
// best-effort; a provider failure degrades that id to nulls instead of failing
// the call. Stale-but-present rows are served as-is here, the interactive
// paths handle refresh.
func (s *MovieService) DisplayFor(ctx context.Context, tmdbIDs []int, fetchMissing bool) (map[int]models.MovieDisplay, error) {
	displays := make(map[int]models.MovieDisplay, len(tmdbIDs))
	if len(tmdbIDs) == 0 {
		return displays, nil
	}

	cached, err := s.movieRepo.GetByIDs(ctx, tmdbIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range tmdbIDs {
		if row, ok := cached[id]; ok {
			displays[id] = row.Display()
			continue
		}
		if fetchMissing {
			if fresh, refreshErr := s.Refresh(ctx, id); refreshErr == nil {
				displays[id] = fresh.Display()
				continue
			}
		}
		displays[id] = models.MovieDisplay{TMDBID: id}
	}
	return displays, nil
}

// Discover proxies the provider's popularity-sorted listing and warms the
// cache with the results.
func (s *MovieService) Discover(ctx context.Context, page int) (*tmdb.ListResponse, error) {
	list, err := s.tmdb.Discover(ctx, page)
	if err != nil {
		middleware.TMDBFetches.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("Movie metadata provider unavailable", err)
	}
	middleware.TMDBFetches.WithLabelValues("ok").Inc()
	s.warmFromList(ctx, list.Results)
	return list, nil
}

// Search proxies the provider's title search and warms the cache with the
// results.
func (s *MovieService) Search(ctx context.Context, query string, page int) (*tmdb.ListResponse, error) {
	list, err := s.tmdb.Search(ctx, query, page)
	if err != nil {
		middleware.TMDBFetches.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("Movie metadata provider unavailable", err)
	}
	middleware.TMDBFetches.WithLabelValues("ok").Inc()
	s.warmFromList(ctx, list.Results)
	return list, nil
}

// Genres proxies the provider's genre list, used by clients to render the
// genre ids cached on movie rows.
func (s *MovieService) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	genres, err := s.tmdb.GetGenres(ctx)
	if err != nil {
		middleware.TMDBFetches.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("Movie metadata provider unavailable", err)
	}
	middleware.TMDBFetches.WithLabelValues("ok").Inc()
	return genres, nil
}

// warmFromList opportunistically upserts list results. List payloads carry no
// runtime, so an existing detailed row is not overwritten with a zero.
func (s *MovieService) warmFromList(ctx context.Context, results []tmdb.Movie) {
	now := time.Now().UTC()
	for i := range results {
		r := &results[i]
		existing, err := s.movieRepo.Get(ctx, r.ID)
		if err != nil || (existing != nil && !existing.StaleAfter(s.ttl)) {
			continue
		}
		movie := &models.Movie{
			TMDBID:      r.ID,
			Title:       r.Title,
			PosterPath:  r.PosterPath,
			Overview:    r.Overview,
			ReleaseYear: tmdb.ReleaseYear(r.ReleaseDate),
			CachedAt:    now,
		}
		if existing != nil {
			movie.Runtime = existing.Runtime
		}
		movie.SetGenreIDs(r.GenreIDs)
		if err := s.movieRepo.Upsert(ctx, movie); err != nil {
			slog.WarnContext(ctx, "failed to warm movie cache", "tmdb_id", r.ID, "error", err)
		}
	}
}

func (s *MovieService) hotGet(ctx context.Context, tmdbID int) *models.Movie {
	rdb := cache.GetClient()
	if rdb == nil {
		return nil
	}
	raw, err := rdb.Get(ctx, cache.MovieKey(tmdbID)).Bytes()
	if err != nil {
		return nil
	}
	var movie models.Movie
	if err := json.Unmarshal(raw, &movie); err != nil {
		return nil
	}
	if movie.StaleAfter(s.ttl) {
		return nil
	}
	return &movie
}

func (s *MovieService) hotSet(ctx context.Context, movie *models.Movie) {
	rdb := cache.GetClient()
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(movie)
	if err != nil {
		return
	}
	rdb.Set(ctx, cache.MovieKey(movie.TMDBID), raw, cache.MovieTTL)
}
