package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/models"
	"github.com/tahmid27/wavely/backend/internal/service"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *service.CommentService

	// trustCommentAuthor restores the legacy behavior of accepting a
	// caller-supplied author id on comment creation instead of binding the
	// author to the session identity.
	trustCommentAuthor bool
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *service.CommentService, trustCommentAuthor bool) *CommentHandler {
	return &CommentHandler{comments: comments, trustCommentAuthor: trustCommentAuthor}
}

// RegisterListRoutes registers the authenticated comment listing route
func (h *CommentHandler) RegisterListRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.ListComments)
}

// RegisterCreateRoutes registers the comment creation route. It sits behind
// optional auth so the legacy trusted-author mode keeps working.
func (h *CommentHandler) RegisterCreateRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	authorID := middleware.UserIDFromContext(c)
	if h.trustCommentAuthor && req.AuthorID != 0 {
		authorID = req.AuthorID
	}
	if authorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	comment, err := h.comments.Create(c.Request().Context(), postID, authorID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// ListComments returns one page of the reverse-paginated comment listing
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID := c.Param("post_id")

	var cursor *uint
	if raw := c.QueryParam("cursor"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid cursor")
		}
		u := uint(id)
		cursor = &u
	}

	page, err := h.comments.List(c.Request().Context(), postID, cursor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
