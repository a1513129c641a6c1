package models

import "github.com/orris-inc/subledger/internal/shared/constants"

// SequenceModel is a named counter; NextValue is the next value to hand out.
type SequenceModel struct {
	Name      string `gorm:"primaryKey;size:64"`
	NextValue uint64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (SequenceModel) TableName() string {
	return constants.TableLedgerSequences
}
