package repositories

import (
	"context"

	"github.com/tahmid27/wavely/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListPageBefore returns up to limit comments for the post in ascending
	// id order, taken from the end of the sequence backward. When cursor is
	// non-nil only comments with id <= cursor are considered, so the cursor
	// row itself is the last element of the returned slice.
	ListPageBefore(ctx context.Context, postID string, cursor *uint, limit int) ([]models.Comment, error)
	WithTx(tx *gorm.DB) CommentRepository
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresCommentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &PostgresCommentRepository{db: tx}
}

func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) ListPageBefore(ctx context.Context, postID string, cursor *uint, limit int) ([]models.Comment, error) {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if cursor != nil {
		q = q.Where("id <= ?", *cursor)
	}

	var comments []models.Comment
	if err := q.Order("id DESC").Limit(limit).Find(&comments).Error; err != nil {
		return nil, err
	}

	// Fetched newest-first; flip to ascending order for the caller.
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return comments, nil
}
