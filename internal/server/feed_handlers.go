package server

import (
	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
// @Summary Activity feed
// @Description Recent want decisions and watch events from accepted friends, newest first
// @Tags feed
// @Produce json
// @Success 200 {array} models.FeedItem
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	items, err := s.feedService.BuildFeed(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}
