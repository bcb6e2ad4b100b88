package service

import (
	"context"

	"github.com/tahmid27/wavely/backend/internal/models"
	"github.com/tahmid27/wavely/backend/internal/repositories"
)

// CommentService handles comment creation and the reverse-paginated listing.
type CommentService struct {
	comments repositories.CommentRepository
	users    repositories.UserRepository
	pageSize int
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, users repositories.UserRepository, pageSize int) *CommentService {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &CommentService{comments: comments, users: users, pageSize: pageSize}
}

// Create inserts a comment and returns it annotated with the author's
// public profile. No notification is produced for comments.
func (s *CommentService) Create(ctx context.Context, postID string, authorID uint, content string) (*models.CommentView, error) {
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	view := &models.CommentView{Comment: *comment}
	if author, err := s.users.GetByID(ctx, authorID); err == nil {
		view.Author = author.ToCompact()
	}
	return view, nil
}

// List returns one page of comments in ascending creation order, ending at
// the newest when no cursor is given. It fetches pageSize+1 rows from the
// older end of the window: when the extra row is present its id becomes the
// previousCursor and the row itself is excluded from the page.
func (s *CommentService) List(ctx context.Context, postID string, cursor *uint) (*models.CommentsPage, error) {
	comments, err := s.comments.ListPageBefore(ctx, postID, cursor, s.pageSize+1)
	if err != nil {
		return nil, err
	}

	var previousCursor *uint
	if len(comments) > s.pageSize {
		previousCursor = &comments[0].ID
		comments = comments[1:]
	}

	views, err := s.annotate(ctx, comments)
	if err != nil {
		return nil, err
	}
	return &models.CommentsPage{Comments: views, PreviousCursor: previousCursor}, nil
}

// annotate attaches author profiles with one batch lookup.
func (s *CommentService) annotate(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	ids := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}

	authors, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, len(comments))
	for i, c := range comments {
		views[i] = models.CommentView{Comment: c}
		if author, ok := authors[c.AuthorID]; ok {
			views[i].Author = author.ToCompact()
		}
	}
	return views, nil
}
