package models

import (
	"gorm.io/datatypes"

	"github.com/orris-inc/subledger/internal/shared/constants"
)

// LedgerEventModel is one row of the append-only audit log. Sequence is
// allocated inside the writing transaction, so log order equals commit order
// per aggregate.
type LedgerEventModel struct {
	Sequence    uint64         `gorm:"column:seq;primaryKey;autoIncrement:false"`
	EventID     string         `gorm:"uniqueIndex;not null;size:40"`
	EventType   string         `gorm:"not null;size:64;index:idx_event_type"`
	AggregateID string         `gorm:"not null;size:64;index:idx_event_aggregate"`
	Payload     datatypes.JSON `gorm:"not null"`
	OccurredAt  int64          `gorm:"not null;index:idx_event_occurred_at"`
	Version     int            `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (LedgerEventModel) TableName() string {
	return constants.TableLedgerEvents
}
