package server

import (
	"strings"

	"flick/internal/cache"
	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update profile
// @Description Update the authenticated user's display name and/or image
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{name=string,image=string} true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == nil && req.Image == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nothing to update"))
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	user, err := s.userRepo.UpdateProfile(c.Context(), userID, req.Name, req.Image)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// Feed and friend responses render from the hot summary; drop it so the
	// new name shows up immediately.
	cache.InvalidateUser(c.Context(), userID)

	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search
// @Summary Search users
// @Description Search users by username or display name
// @Tags users
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.UserSummary
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	users, err := s.userRepo.Search(c.Context(), query, 20)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(summaries)
}
