package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/service"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	interactions *service.InteractionService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(interactions *service.InteractionService) *FollowHandler {
	return &FollowHandler{interactions: interactions}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/users/:user_id/followers", h.GetFollowStatus)
	g.POST("/users/:user_id/followers", h.FollowUser)
	g.DELETE("/users/:user_id/followers", h.UnfollowUser)
}

// GetFollowStatus returns the target's follower count and whether the
// caller follows them
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	targetID, err := parseUserIDParam(c, "user_id")
	if err != nil {
		return err
	}

	info, err := h.interactions.FollowStatus(c.Request().Context(), userID, targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	targetID, err := parseUserIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.interactions.Follow(c.Request().Context(), userID, targetID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Followed successfully"})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	targetID, err := parseUserIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.interactions.Unfollow(c.Request().Context(), userID, targetID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed successfully"})
}
