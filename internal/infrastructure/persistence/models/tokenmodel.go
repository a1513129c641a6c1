package models

import "github.com/orris-inc/subledger/internal/shared/constants"

type TokenAccountModel struct {
	Identity  string `gorm:"primaryKey;size:42"`
	Balance   uint64 `gorm:"not null;default:0"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (TokenAccountModel) TableName() string {
	return constants.TableTokenAccounts
}

type TokenAllowanceModel struct {
	Owner     string `gorm:"primaryKey;size:42"`
	Spender   string `gorm:"primaryKey;size:42"`
	Amount    uint64 `gorm:"not null;default:0"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (TokenAllowanceModel) TableName() string {
	return constants.TableTokenAllowances
}
