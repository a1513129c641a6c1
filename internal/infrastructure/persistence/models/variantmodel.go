package models

import "github.com/orris-inc/subledger/internal/shared/constants"

// VariantModel is an append-only catalog row. ID comes from the
// "variant" sequence, never from auto increment.
type VariantModel struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement:false"`
	Cost       uint64 `gorm:"not null"`
	TimeToLive uint64 `gorm:"not null"`
	Available  bool   `gorm:"not null;index:idx_variant_available"`
	CreatedAt  int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  int64  `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (VariantModel) TableName() string {
	return constants.TableVariants
}
