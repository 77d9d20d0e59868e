package server

import (
	"flick/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup handles POST /api/groups
// @Summary Create group
// @Description Create a group; the creator is auto-joined as the first member
// @Tags groups
// @Accept json
// @Produce json
// @Param request body object{name=string} true "Group name"
// @Success 201 {object} models.GroupSummary
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.Create(c.Context(), userID, req.Name)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroups handles GET /api/groups
// @Summary List groups
// @Description Get the caller's groups with live member counts
// @Tags groups
// @Produce json
// @Success 200 {array} models.GroupSummary
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups [get]
func (s *Server) GetGroups(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groups, err := s.groupService.List(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(groups)
}

// GetGroup handles GET /api/groups/:id
// @Summary Group details
// @Description Get a group with its member list; non-members get 404
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} models.GroupDetails
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups/{id} [get]
func (s *Server) GetGroup(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	details, detailsErr := s.groupService.Details(c.Context(), userID, groupID)
	if detailsErr != nil {
		return models.RespondWithAppError(c, detailsErr)
	}
	return c.JSON(details)
}

// AddGroupMember handles POST /api/groups/:id/members
// @Summary Add group member
// @Description Add a user (by id or username) to the group; any member may add
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body object{userId=integer,username=string} true "Target user"
// @Success 200 {object} object{success=boolean}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/members [post]
func (s *Server) AddGroupMember(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID   uint   `json:"userId"`
		Username string `json:"username"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if addErr := s.groupService.AddMember(c.Context(), userID, groupID, req.UserID, req.Username); addErr != nil {
		return models.RespondWithAppError(c, addErr)
	}
	return c.JSON(fiber.Map{"success": true})
}

// LeaveGroup handles DELETE /api/groups/:id/members
// @Summary Leave group
// @Description Remove the caller's own membership from the group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} object{success=boolean}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/members [delete]
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if leaveErr := s.groupService.Leave(c.Context(), userID, groupID); leaveErr != nil {
		return models.RespondWithAppError(c, leaveErr)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteGroup handles DELETE /api/groups/:id
// @Summary Delete group
// @Description Delete the group and all memberships; creator only
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} object{success=boolean}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if deleteErr := s.groupService.Delete(c.Context(), userID, groupID); deleteErr != nil {
		return models.RespondWithAppError(c, deleteErr)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetGroupMatches handles GET /api/groups/:id/matches
// @Summary Group matches
// @Description Movies every current member of the group wants to watch
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} models.MovieDisplay
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/matches [get]
func (s *Server) GetGroupMatches(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	matches, matchErr := s.matchService.GroupMatches(c.Context(), userID, groupID)
	if matchErr != nil {
		return models.RespondWithAppError(c, matchErr)
	}
	return c.JSON(matches)
}
