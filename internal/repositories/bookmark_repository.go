package repositories

import (
	"context"

	"github.com/tahmid27/wavely/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines the interface for bookmark-edge data operations
type BookmarkRepository interface {
	Upsert(ctx context.Context, userID uint, postID string) error
	Delete(ctx context.Context, userID uint, postID string) error
	Exists(ctx context.Context, userID uint, postID string) (bool, error)
	WithTx(tx *gorm.DB) BookmarkRepository
}

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresBookmarkRepository) WithTx(tx *gorm.DB) BookmarkRepository {
	return &PostgresBookmarkRepository{db: tx}
}

func (r *PostgresBookmarkRepository) Upsert(ctx context.Context, userID uint, postID string) error {
	bookmark := models.Bookmark{UserID: userID, PostID: postID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&bookmark).Error
}

// Delete removes the bookmark edge if present. Zero affected rows is not an
// error.
func (r *PostgresBookmarkRepository) Delete(ctx context.Context, userID uint, postID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Bookmark{}).Error
}

func (r *PostgresBookmarkRepository) Exists(ctx context.Context, userID uint, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
