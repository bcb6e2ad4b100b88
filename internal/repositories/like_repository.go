package repositories

import (
	"context"

	"github.com/tahmid27/wavely/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like-edge data operations.
// Upsert and Delete are idempotent: creating a present edge and deleting an
// absent one both succeed without effect.
type LikeRepository interface {
	// Upsert reports whether the edge was newly created; a conflict with an
	// existing edge succeeds with created=false.
	Upsert(ctx context.Context, userID uint, postID string) (created bool, err error)
	Delete(ctx context.Context, userID uint, postID string) error
	Exists(ctx context.Context, userID uint, postID string) (bool, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
	WithTx(tx *gorm.DB) LikeRepository
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresLikeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &PostgresLikeRepository{db: tx}
}

// Upsert inserts the like edge, relying on the composite unique index to
// absorb duplicates instead of a read-then-write check.
func (r *PostgresLikeRepository) Upsert(ctx context.Context, userID uint, postID string) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&like)
	return res.RowsAffected > 0, res.Error
}

// Delete removes the like edge if present. Zero affected rows is not an
// error.
func (r *PostgresLikeRepository) Delete(ctx context.Context, userID uint, postID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

// Exists reports whether the user has liked the post.
func (r *PostgresLikeRepository) Exists(ctx context.Context, userID uint, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// CountByPostID retrieves the count of likes for a specific post.
func (r *PostgresLikeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
