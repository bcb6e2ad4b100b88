package models

import "time"

// Comment represents a comment on a post. IDs are auto-increment and the
// table is append-only, so id order matches created_at order; comment
// listing uses the id as its pagination cursor.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is a comment annotated with its author's public profile.
type CommentView struct {
	Comment
	Author UserCompact `json:"author"`
}

// CreateCommentRequest defines the request body for creating a new comment.
// AuthorID is honored only when the server runs with TRUST_COMMENT_AUTHOR.
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	AuthorID uint   `json:"author_id,omitempty"`
}

// CommentsPage is one page of a reverse-paginated comment listing.
// PreviousCursor points at the boundary of the next older page; nil means
// no older page exists.
type CommentsPage struct {
	Comments       []CommentView `json:"comments"`
	PreviousCursor *uint         `json:"previousCursor"`
}
