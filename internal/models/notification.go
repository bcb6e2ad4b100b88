package models

import "time"

// Notification types. A notification is created in the same transaction as
// the edge that triggered it and deleted when that edge is removed.
const (
	NotificationLike   = "LIKE"
	NotificationFollow = "FOLLOW"
)

// Notification represents a user-visible event derived from an edge
// mutation. PostID is empty for FOLLOW notifications.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:20;index"`
	IssuerID    uint      `json:"issuer_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	PostID      string    `json:"post_id,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
