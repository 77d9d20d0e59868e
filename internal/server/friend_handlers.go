package server

import (
	"strings"

	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
// @Summary List relationships
// @Description Get every friendship edge touching the caller, with friend summaries
// @Tags friends
// @Produce json
// @Success 200 {array} models.FriendshipView
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := currentUserID(c)

	views, err := s.friendService.ListRelationships(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(views)
}

// SendFriendRequest handles POST /api/friends
// @Summary Send friend request
// @Description Create a pending friendship edge to a user, referenced by id or username
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{userId=integer,username=string} true "Target user"
// @Success 201 {object} models.Friendship
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		UserID   uint   `json:"userId"`
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	targetID := req.UserID
	if targetID == 0 {
		username := strings.TrimSpace(req.Username)
		if username == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("A user ID or username is required"))
		}
		target, err := s.userRepo.GetByUsername(c.Context(), username)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		if target == nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", username))
		}
		targetID = target.ID
	}

	friendship, err := s.friendService.SendRequest(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// AcceptFriendRequest handles POST /api/friends/:id/accept
// @Summary Accept friend request
// @Description Accept an incoming pending friend request
// @Tags friends
// @Produce json
// @Param id path int true "Friendship ID"
// @Success 200 {object} models.Friendship
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/{id}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)

	friendshipID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friendship, acceptErr := s.friendService.Accept(c.Context(), userID, friendshipID)
	if acceptErr != nil {
		return models.RespondWithAppError(c, acceptErr)
	}
	return c.JSON(friendship)
}

// DeclineFriendRequest handles POST /api/friends/:id/decline
// @Summary Decline friend request
// @Description Decline (or cancel) a pending friend request, removing the edge
// @Tags friends
// @Produce json
// @Param id path int true "Friendship ID"
// @Success 200 {object} object{success=boolean}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/{id}/decline [post]
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)

	friendshipID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if declineErr := s.friendService.Decline(c.Context(), userID, friendshipID); declineErr != nil {
		return models.RespondWithAppError(c, declineErr)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetPairwiseMatches handles GET /api/friends/:friendId/matches
// @Summary Pairwise matches
// @Description Movies both the caller and the given user want to watch
// @Tags friends
// @Produce json
// @Param friendId path int true "Friend user ID"
// @Success 200 {array} models.MovieDisplay
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/{friendId}/matches [get]
func (s *Server) GetPairwiseMatches(c *fiber.Ctx) error {
	userID := currentUserID(c)

	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	matches, matchErr := s.matchService.PairwiseMatches(c.Context(), userID, friendID)
	if matchErr != nil {
		return models.RespondWithAppError(c, matchErr)
	}
	return c.JSON(matches)
}
