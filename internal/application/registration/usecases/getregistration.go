package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/registration/dto"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type GetRegistrationQuery struct {
	Identity shared.Identity
}

// GetRegistrationUseCase reports the registry entry of an identity. Unknown
// identities are answered with Registered=false, never an error.
type GetRegistrationUseCase struct {
	registrationRepo registration.Repository
	logger           logger.Interface
}

func NewGetRegistrationUseCase(registrationRepo registration.Repository, logger logger.Interface) *GetRegistrationUseCase {
	return &GetRegistrationUseCase{
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

func (uc *GetRegistrationUseCase) Execute(ctx context.Context, query GetRegistrationQuery) (*dto.RegistrationDTO, error) {
	reg, err := uc.registrationRepo.GetByIdentity(ctx, query.Identity)
	if err != nil {
		uc.logger.Errorw("failed to get registration", "identity", query.Identity, "error", err)
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return dto.ToRegistrationDTO(query.Identity, reg), nil
}

// IsRegistered is the boolean form of Execute.
func (uc *GetRegistrationUseCase) IsRegistered(ctx context.Context, identity shared.Identity) (bool, error) {
	exists, err := uc.registrationRepo.Exists(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return exists, nil
}
