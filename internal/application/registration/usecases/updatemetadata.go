package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/common"
	"github.com/orris-inc/subledger/internal/application/registration/dto"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/guard"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type UpdateMetadataCommand struct {
	Identity    shared.Identity
	MetadataURL string
}

type UpdateMetadataUseCase struct {
	registrationRepo registration.Repository
	eventLog         ledger.EventLog
	txMgr            *db.TransactionManager
	guard            *guard.Guard
	publisher        events.EventPublisher
	clock            clock.Clock
	logger           logger.Interface
}

func NewUpdateMetadataUseCase(
	registrationRepo registration.Repository,
	eventLog ledger.EventLog,
	txMgr *db.TransactionManager,
	g *guard.Guard,
	publisher events.EventPublisher,
	clk clock.Clock,
	logger logger.Interface,
) *UpdateMetadataUseCase {
	return &UpdateMetadataUseCase{
		registrationRepo: registrationRepo,
		eventLog:         eventLog,
		txMgr:            txMgr,
		guard:            g,
		publisher:        publisher,
		clock:            clk,
		logger:           logger,
	}
}

// Execute replaces the caller's metadata. Updates for one identity are
// serialized and the row is read locked, so a registered caller never sees
// ErrNotRegistered because of a concurrent update.
func (uc *UpdateMetadataUseCase) Execute(ctx context.Context, cmd UpdateMetadataCommand) (*dto.RegistrationDTO, error) {
	var (
		reg      *registration.Registration
		recorded []events.DomainEvent
	)
	err := uc.guard.Do(ctx, cmd.Identity.String(), func(ctx context.Context) error {
		return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			reg, err = uc.registrationRepo.GetForUpdate(txCtx, cmd.Identity)
			if err != nil {
				return fmt.Errorf("failed to get registration: %w", err)
			}
			if reg == nil {
				return registration.ErrNotRegistered
			}

			reg.UpdateMetadata(cmd.MetadataURL, uc.clock.Now())
			if err := uc.registrationRepo.Update(txCtx, reg); err != nil {
				return err
			}
			recorded = reg.GetEvents()
			return uc.eventLog.Append(txCtx, recorded...)
		})
	})
	if err != nil {
		if errors.Is(err, registration.ErrNotRegistered) ||
			errors.Is(err, registration.ErrStaleVersion) ||
			errors.Is(err, guard.ErrReentrantCall) {
			uc.logger.Warnw("metadata update rejected", "identity", cmd.Identity, "reason", err)
		} else {
			uc.logger.Errorw("failed to update registration metadata", "identity", cmd.Identity, "error", err)
		}
		return nil, err
	}

	common.PublishCommitted(uc.publisher, uc.logger, recorded)
	uc.logger.Infow("registration metadata updated", "identity", cmd.Identity, "version", reg.Version())
	return dto.ToRegistrationDTO(cmd.Identity, reg), nil
}
