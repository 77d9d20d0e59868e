package repository

import (
	"context"
	"errors"

	"flick/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieRepository defines the interface for the movie metadata cache table.
type MovieRepository interface {
	Get(ctx context.Context, tmdbID int) (*models.Movie, error)
	GetByIDs(ctx context.Context, tmdbIDs []int) (map[int]models.Movie, error)
	Upsert(ctx context.Context, movie *models.Movie) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie cache repository
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Get returns the cached row, or nil on a cache miss. Staleness is the
// caller's policy, not the repository's.
func (r *movieRepository) Get(ctx context.Context, tmdbID int) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).Where("tmdb_id = ?", tmdbID).First(&movie).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &movie, nil
}

// GetByIDs batch-resolves cached rows for a movie id set in one query.
func (r *movieRepository) GetByIDs(ctx context.Context, tmdbIDs []int) (map[int]models.Movie, error) {
	cached := make(map[int]models.Movie, len(tmdbIDs))
	if len(tmdbIDs) == 0 {
		return cached, nil
	}

	var movies []models.Movie
	if err := r.db.WithContext(ctx).Where("tmdb_id IN ?", tmdbIDs).Find(&movies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range movies {
		cached[movies[i].TMDBID] = movies[i]
	}
	return cached, nil
}

func (r *movieRepository) Upsert(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tmdb_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "poster_path", "overview", "release_year", "genres", "runtime", "cached_at",
			}),
		}).
		Create(movie).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
