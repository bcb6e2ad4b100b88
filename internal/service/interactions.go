package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/tahmid27/wavely/backend/internal/models"
	"github.com/tahmid27/wavely/backend/internal/repositories"
	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
	ErrSelfFollow   = errors.New("cannot follow yourself")
)

// LikeInfo is the read-side projection for a post's likes.
type LikeInfo struct {
	Likes         int64 `json:"likes"`
	IsLikedByUser bool  `json:"isLikedByUser"`
}

// FollowerInfo is the read-side projection for a user's followers.
type FollowerInfo struct {
	Followers        int64 `json:"followers"`
	IsFollowedByUser bool  `json:"isFollowedByUser"`
}

// BookmarkInfo is the read-side projection for a post's bookmark state.
type BookmarkInfo struct {
	IsBookmarkedByUser bool `json:"isBookmarkedByUser"`
}

// InteractionService is the edge mutation core: idempotent follow, like and
// bookmark edges plus the notifications derived from them. Every edge write
// and its notification side effect run inside a single transaction, so
// readers never observe one without the other.
type InteractionService struct {
	db              *gorm.DB
	posts           repositories.PostRepository
	users           repositories.UserRepository
	likes           repositories.LikeRepository
	follows         repositories.FollowRepository
	bookmarks       repositories.BookmarkRepository
	notifications   repositories.NotificationRepository
	allowSelfFollow bool
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	db *gorm.DB,
	posts repositories.PostRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	follows repositories.FollowRepository,
	bookmarks repositories.BookmarkRepository,
	notifications repositories.NotificationRepository,
	allowSelfFollow bool,
) *InteractionService {
	return &InteractionService{
		db:              db,
		posts:           posts,
		users:           users,
		likes:           likes,
		follows:         follows,
		bookmarks:       bookmarks,
		notifications:   notifications,
		allowSelfFollow: allowSelfFollow,
	}
}

// isSelfAction reports whether a user is acting on their own resource or
// identity. Self-actions still create the edge but must not notify.
//
// Only the like path applies this guard; Follow notifies unconditionally,
// repeats included. The divergence is inherited behavior, kept as observed
// rather than silently unified.
func isSelfAction(issuerID, recipientID uint) bool {
	return issuerID == recipientID
}

// Follow upserts the follow edge and records a FOLLOW notification. The
// notification insert is not guarded by edge existence: repeated Follow
// calls add a notification each time.
func (s *InteractionService) Follow(ctx context.Context, callerID, targetUserID uint) error {
	if !s.allowSelfFollow && isSelfAction(callerID, targetUserID) {
		return ErrSelfFollow
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.follows.WithTx(tx).Upsert(ctx, callerID, targetUserID); err != nil {
			return err
		}
		return s.notifications.WithTx(tx).Create(ctx, &models.Notification{
			Type:        models.NotificationFollow,
			IssuerID:    callerID,
			RecipientID: targetUserID,
		})
	})
}

// Unfollow deletes the follow edge, if any, together with the FOLLOW
// notifications the caller created for the target. Succeeds whether or not
// the edge existed.
func (s *InteractionService) Unfollow(ctx context.Context, callerID, targetUserID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.follows.WithTx(tx).Delete(ctx, callerID, targetUserID); err != nil {
			return err
		}
		return s.notifications.WithTx(tx).DeleteFollow(ctx, callerID, targetUserID)
	})
}

// Like upserts the like edge and, when the edge is newly created and the
// caller is not the post's author, records a LIKE notification. Repeat
// likes therefore leave exactly one edge and one notification, in contrast
// to Follow's unconditional insert.
func (s *InteractionService) Like(ctx context.Context, callerID uint, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.likes.WithTx(tx).Upsert(ctx, callerID, postID)
		if err != nil {
			return err
		}
		// Notify only when the edge actually came into existence, and never
		// for a self-like.
		if !created || isSelfAction(callerID, post.AuthorID) {
			return nil
		}
		return s.notifications.WithTx(tx).Create(ctx, &models.Notification{
			Type:        models.NotificationLike,
			IssuerID:    callerID,
			RecipientID: post.AuthorID,
			PostID:      postID,
		})
	})
}

// Unlike deletes the like edge and the matching LIKE notifications. A post
// whose author can no longer be resolved (deleted concurrently) does not
// abort the operation; the notification delete then drops the recipient
// filter.
func (s *InteractionService) Unlike(ctx context.Context, callerID uint, postID string) error {
	var recipientID *uint
	post, err := s.posts.GetByID(ctx, postID)
	switch {
	case err == nil:
		recipientID = &post.AuthorID
	case errors.Is(err, repositories.ErrPostNotFound):
		// Edge and notification cleanup proceed without the author.
	default:
		log.Warn().Err(err).Str("post_id", postID).Msg("unlike: post lookup failed, proceeding without author")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.likes.WithTx(tx).Delete(ctx, callerID, postID); err != nil {
			return err
		}
		return s.notifications.WithTx(tx).DeleteLike(ctx, callerID, recipientID, postID)
	})
}

// Bookmark upserts the private bookmark edge. No notification side effect.
func (s *InteractionService) Bookmark(ctx context.Context, callerID uint, postID string) error {
	return s.bookmarks.Upsert(ctx, callerID, postID)
}

// Unbookmark deletes the bookmark edge if present.
func (s *InteractionService) Unbookmark(ctx context.Context, callerID uint, postID string) error {
	return s.bookmarks.Delete(ctx, callerID, postID)
}

// BookmarkStatus reports whether the caller has bookmarked the post.
func (s *InteractionService) BookmarkStatus(ctx context.Context, callerID uint, postID string) (*BookmarkInfo, error) {
	bookmarked, err := s.bookmarks.Exists(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}
	return &BookmarkInfo{IsBookmarkedByUser: bookmarked}, nil
}

// LikeStatus projects the post's like count and whether the caller has liked
// it. Counts always come from committed state; nothing is cached.
func (s *InteractionService) LikeStatus(ctx context.Context, callerID uint, postID string) (*LikeInfo, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	count, err := s.likes.CountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.Exists(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}
	return &LikeInfo{Likes: count, IsLikedByUser: liked}, nil
}

// FollowStatus projects the target's follower count and whether the caller
// follows them.
func (s *InteractionService) FollowStatus(ctx context.Context, callerID, targetUserID uint) (*FollowerInfo, error) {
	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.follows.CountFollowers(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.IsFollowing(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	return &FollowerInfo{Followers: count, IsFollowedByUser: following}, nil
}
