package models

import (
	"strconv"
	"strings"
	"time"
)

// Movie is one cached metadata row for an external (TMDB) movie id. It is a
// display-acceleration layer, never authoritative; rows older than the
// configured staleness window are refreshed from the provider on demand.
type Movie struct {
	TMDBID      int       `gorm:"column:tmdb_id;primaryKey" json:"tmdb_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	PosterPath  string    `gorm:"size:255" json:"posterPath"`
	Overview    string    `gorm:"type:text" json:"overview"`
	ReleaseYear int       `json:"releaseYear"`
	Genres      string    `gorm:"size:255" json:"-"`
	Runtime     int       `json:"runtime"`
	CachedAt    time.Time `json:"cached_at"`
}

// TableName specifies the table name for GORM.
func (Movie) TableName() string {
	return "movies_cache"
}

// GenreIDs decodes the comma-separated genre id column.
// Stored as a string so the row shape is portable across postgres and the
// sqlite test databases (pg integer arrays are not).
func (m *Movie) GenreIDs() []int {
	if m.Genres == "" {
		return nil
	}
	parts := strings.Split(m.Genres, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetGenreIDs encodes genre ids into the storage column.
func (m *Movie) SetGenreIDs(ids []int) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	m.Genres = strings.Join(parts, ",")
}

// StaleAfter reports whether the cache row is older than the given TTL.
func (m *Movie) StaleAfter(ttl time.Duration) bool {
	return time.Since(m.CachedAt) > ttl
}

// MovieDisplay is the display subset attached to matches, want lists and feed
// items. Fields are pointers so a movie with no cache entry renders as nulls
// instead of being dropped from the result.
type MovieDisplay struct {
	TMDBID      int     `json:"tmdb_id"`
	Title       *string `json:"title"`
	PosterPath  *string `json:"posterPath"`
	Overview    *string `json:"overview"`
	ReleaseYear *int    `json:"releaseYear"`
}

// Display returns the display projection of a cached row.
func (m *Movie) Display() MovieDisplay {
	return MovieDisplay{
		TMDBID:      m.TMDBID,
		Title:       &m.Title,
		PosterPath:  &m.PosterPath,
		Overview:    &m.Overview,
		ReleaseYear: &m.ReleaseYear,
	}
}
