package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// SequenceRepositoryImpl keeps named counters in ledger_sequences. The row
// is locked for the rest of the caller's transaction, so concurrent
// allocators queue behind it and a rollback releases the value.
type SequenceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

var (
	_ ledger.Sequencer   = (*SequenceRepositoryImpl)(nil)
	_ catalog.IDSequence = (*SequenceRepositoryImpl)(nil)
)

func NewSequenceRepository(db *gorm.DB, logger logger.Interface) *SequenceRepositoryImpl {
	return &SequenceRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SequenceRepositoryImpl) Next(ctx context.Context, name string) (uint64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	seed := &models.SequenceModel{Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		r.logger.Errorw("failed to seed sequence", "name", name, "error", err)
		return 0, fmt.Errorf("failed to seed sequence %s: %w", name, err)
	}

	var seq models.SequenceModel
	if err := tx.Scopes(db.ForUpdate()).Where("name = ?", name).Take(&seq).Error; err != nil {
		r.logger.Errorw("failed to lock sequence", "name", name, "error", err)
		return 0, fmt.Errorf("failed to lock sequence %s: %w", name, err)
	}

	result := tx.Model(&models.SequenceModel{}).
		Where("name = ? AND next_value = ?", name, seq.NextValue).
		Update("next_value", gorm.Expr("next_value + 1"))
	if result.Error != nil {
		r.logger.Errorw("failed to advance sequence", "name", name, "error", result.Error)
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, result.Error)
	}
	if result.RowsAffected != 1 {
		return 0, fmt.Errorf("sequence %s advanced concurrently", name)
	}

	return seq.NextValue, nil
}

// Peek returns the value Next would hand out without consuming it.
func (r *SequenceRepositoryImpl) Peek(ctx context.Context, name string) (uint64, error) {
	var seq models.SequenceModel
	err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).Take(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	return seq.NextValue, nil
}

func (r *SequenceRepositoryImpl) NextVariantID(ctx context.Context) (uint64, error) {
	return r.Next(ctx, ledger.SequenceVariant)
}
