package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response of a bill request so a retried request
// with the same key replays it instead of billing the table twice.
type IdempotencyKey struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_key_client;size:255;not null"`
	ClientID     string    `gorm:"uniqueIndex:idx_idempotency_key_client;size:128;not null"` // waiter id or client ip
	Endpoint     string    `gorm:"size:255;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// BeforeCreate assigns a UUID when none is set
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
