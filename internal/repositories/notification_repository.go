package repositories

import (
	"context"

	"github.com/tahmid27/wavely/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// The Delete* methods remove exactly the notifications created for one
// edge-creation event, scoped by issuer, recipient and type, so records
// produced by other actors or event types survive.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	DeleteFollow(ctx context.Context, issuerID, recipientID uint) error
	DeleteLike(ctx context.Context, issuerID uint, recipientID *uint, postID string) error
	GetByRecipientID(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) error
	WithTx(tx *gorm.DB) NotificationRepository
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *postgresNotificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: tx}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// DeleteFollow removes the FOLLOW notifications for one follower/followee
// pair.
func (r *postgresNotificationRepository) DeleteFollow(ctx context.Context, issuerID, recipientID uint) error {
	return r.db.WithContext(ctx).
		Where("issuer_id = ? AND recipient_id = ? AND type = ?",
			issuerID, recipientID, models.NotificationFollow).
		Delete(&models.Notification{}).Error
}

// DeleteLike removes the LIKE notifications the issuer created for the post.
// A nil recipientID drops the recipient filter; the post author may no
// longer be resolvable when the post was deleted concurrently.
func (r *postgresNotificationRepository) DeleteLike(ctx context.Context, issuerID uint, recipientID *uint, postID string) error {
	q := r.db.WithContext(ctx).
		Where("issuer_id = ? AND post_id = ? AND type = ?",
			issuerID, postID, models.NotificationLike)
	if recipientID != nil {
		q = q.Where("recipient_id = ?", *recipientID)
	}
	return q.Delete(&models.Notification{}).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead scopes by recipient so users cannot acknowledge notifications
// addressed to someone else.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, recipientID, notificationID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
