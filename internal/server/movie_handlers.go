package server

import (
	"strings"

	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMovieGenres handles GET /api/movies/genres
// @Summary Movie genres
// @Description Genre id/name pairs from the metadata provider
// @Tags movies
// @Produce json
// @Success 200 {array} tmdb.Genre
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/genres [get]
func (s *Server) GetMovieGenres(c *fiber.Ctx) error {
	genres, err := s.movieService.Genres(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(genres)
}

// GetMovie handles GET /api/movies/:id
// @Summary Movie details
// @Description Get cached movie metadata, refreshing from the provider when stale.
// @Description This is the one path where a provider outage surfaces as an error.
// @Tags movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} models.Movie
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/{id} [get]
func (s *Server) GetMovie(c *fiber.Ctx) error {
	tmdbID, err := c.ParamsInt("id")
	if err != nil || tmdbID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid movie ID"))
	}

	movie, detailsErr := s.movieService.Details(c.Context(), tmdbID)
	if detailsErr != nil {
		return models.RespondWithAppError(c, detailsErr)
	}
	return c.JSON(movie)
}

// DiscoverMovies handles GET /api/movies/discover
// @Summary Discover movies
// @Description Popularity-sorted movie listing from the metadata provider
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} tmdb.ListResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/discover [get]
func (s *Server) DiscoverMovies(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	list, err := s.movieService.Discover(c.Context(), page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(list)
}

// SearchMovies handles GET /api/movies/search
// @Summary Search movies
// @Description Title search against the metadata provider
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} tmdb.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/search [get]
func (s *Server) SearchMovies(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	list, err := s.movieService.Search(c.Context(), query, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(list)
}
