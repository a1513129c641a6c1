package models

import "github.com/orris-inc/subledger/internal/shared/constants"

// RegistrationModel represents the database persistence model for registry entries.
// Timestamps are unix seconds.
type RegistrationModel struct {
	Identity     string `gorm:"primaryKey;size:42"`
	MetadataURL  string `gorm:"type:text;not null"`
	RegisteredAt int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
	Version      int    `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (RegistrationModel) TableName() string {
	return constants.TableRegistrations
}
