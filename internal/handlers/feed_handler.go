package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/repositories"
)

// FeedHandler serves the following feed: posts by users the caller follows,
// plus the caller's own, newest first.
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the caller's following feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	if limit < 1 || limit > 50 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}

	followingIDs, err := h.followRepository.FollowingIDs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	authorIDs := append(followingIDs, userID)

	posts, err := h.postRepository.ListByAuthorIDs(c.Request().Context(), authorIDs, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}
