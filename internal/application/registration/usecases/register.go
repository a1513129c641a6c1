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
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type RegisterCommand struct {
	Identity    shared.Identity
	MetadataURL string
}

type RegisterUseCase struct {
	registrationRepo registration.Repository
	eventLog         ledger.EventLog
	txMgr            *db.TransactionManager
	publisher        events.EventPublisher
	clock            clock.Clock
	logger           logger.Interface
}

func NewRegisterUseCase(
	registrationRepo registration.Repository,
	eventLog ledger.EventLog,
	txMgr *db.TransactionManager,
	publisher events.EventPublisher,
	clk clock.Clock,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		registrationRepo: registrationRepo,
		eventLog:         eventLog,
		txMgr:            txMgr,
		publisher:        publisher,
		clock:            clk,
		logger:           logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.RegistrationDTO, error) {
	reg, err := registration.NewRegistration(cmd.Identity, cmd.MetadataURL, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var recorded []events.DomainEvent
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		exists, err := uc.registrationRepo.Exists(txCtx, cmd.Identity)
		if err != nil {
			return fmt.Errorf("failed to check registration: %w", err)
		}
		if exists {
			return registration.ErrAlreadyRegistered
		}
		if err := uc.registrationRepo.Create(txCtx, reg); err != nil {
			return err
		}
		recorded = reg.GetEvents()
		return uc.eventLog.Append(txCtx, recorded...)
	})
	if err != nil {
		if errors.Is(err, registration.ErrAlreadyRegistered) {
			uc.logger.Warnw("identity already registered", "identity", cmd.Identity)
			return nil, err
		}
		uc.logger.Errorw("failed to register identity", "identity", cmd.Identity, "error", err)
		return nil, err
	}

	common.PublishCommitted(uc.publisher, uc.logger, recorded)
	uc.logger.Infow("identity registered", "identity", cmd.Identity)
	return dto.ToRegistrationDTO(cmd.Identity, reg), nil
}
