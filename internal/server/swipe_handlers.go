package server

import (
	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RecordSwipe handles POST /api/swipes
// @Summary Record swipe
// @Description Record or overwrite the caller's stance on a movie
// @Tags swipes
// @Accept json
// @Produce json
// @Param request body object{movieId=integer,direction=string,context=string} true "Swipe"
// @Success 200 {object} object{success=boolean}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /swipes [post]
func (s *Server) RecordSwipe(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		MovieID   int    `json:"movieId"`
		Direction string `json:"direction"`
		Context   string `json:"context"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.swipeService.Record(c.Context(), userID, req.MovieID,
		models.SwipeDirection(req.Direction), req.Context); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetWantToWatch handles GET /api/swipes
// @Summary Want-to-watch list
// @Description Get the caller's want-to-watch decisions, oldest first, with cached metadata
// @Tags swipes
// @Produce json
// @Success 200 {array} models.WantItem
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /swipes [get]
func (s *Server) GetWantToWatch(c *fiber.Ctx) error {
	userID := currentUserID(c)

	items, err := s.swipeService.ListWantToWatch(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}
