package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/service"
)

// BookmarkHandler handles bookmark HTTP requests. Bookmarks are private;
// no notification is ever produced and the post's author never sees them.
type BookmarkHandler struct {
	interactions *service.InteractionService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(interactions *service.InteractionService) *BookmarkHandler {
	return &BookmarkHandler{interactions: interactions}
}

// RegisterBookmarkRoutes registers bookmark-related routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/bookmark", h.GetBookmarkStatus)
	g.POST("/posts/:post_id/bookmark", h.BookmarkPost)
	g.DELETE("/posts/:post_id/bookmark", h.UnbookmarkPost)
}

// GetBookmarkStatus reports whether the caller bookmarked the post
func (h *BookmarkHandler) GetBookmarkStatus(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	postID := c.Param("post_id")

	info, err := h.interactions.BookmarkStatus(c.Request().Context(), userID, postID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// BookmarkPost bookmarks a post
func (h *BookmarkHandler) BookmarkPost(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	postID := c.Param("post_id")

	if err := h.interactions.Bookmark(c.Request().Context(), userID, postID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UnbookmarkPost removes a bookmark
func (h *BookmarkHandler) UnbookmarkPost(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	postID := c.Param("post_id")

	if err := h.interactions.Unbookmark(c.Request().Context(), userID, postID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
