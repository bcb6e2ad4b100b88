package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/service"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interactions *service.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *service.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/likes", h.GetLikeStatus)
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
}

// GetLikeStatus returns the like count and whether the caller liked the post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	postID := c.Param("post_id")

	info, err := h.interactions.LikeStatus(c.Request().Context(), userID, postID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	postID := c.Param("post_id")

	if err := h.interactions.Like(c.Request().Context(), userID, postID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	postID := c.Param("post_id")

	if err := h.interactions.Unlike(c.Request().Context(), userID, postID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
