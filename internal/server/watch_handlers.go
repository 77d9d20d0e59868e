package server

import (
	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LogWatch handles POST /api/watches
// @Summary Log watch
// @Description Append a watch event with optional companions, reaction and note
// @Tags watches
// @Accept json
// @Produce json
// @Param request body object{movieId=integer,companionIds=[]integer,reaction=string,note=string} true "Watch event"
// @Success 201 {object} models.Watch
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /watches [post]
func (s *Server) LogWatch(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		MovieID      int     `json:"movieId"`
		CompanionIDs []uint  `json:"companionIds"`
		Reaction     *string `json:"reaction"`
		Note         string  `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var reaction *models.WatchReaction
	if req.Reaction != nil && *req.Reaction != "" {
		r := models.WatchReaction(*req.Reaction)
		reaction = &r
	}

	watch, err := s.watchService.Log(c.Context(), userID, req.MovieID, req.CompanionIDs, reaction, req.Note)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(watch)
}

// GetWatchHistory handles GET /api/watches
// @Summary Watch history
// @Description Get the caller's watch events, newest first, with cached metadata
// @Tags watches
// @Produce json
// @Success 200 {array} models.WatchHistoryItem
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /watches [get]
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	userID := currentUserID(c)

	items, err := s.watchService.History(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}
