package models

import "github.com/orris-inc/subledger/internal/shared/constants"

// SubscriptionModel holds at most one row per identity.
type SubscriptionModel struct {
	Identity     string `gorm:"primaryKey;size:42"`
	VariantID    uint64 `gorm:"not null;index:idx_subscription_variant"`
	SubscribedAt int64  `gorm:"not null"`
	ExpiresAt    int64  `gorm:"not null;index:idx_subscription_expires_at"`
	AmountPaid   uint64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
