package handlers

import (
	"context"

	catalogdto "github.com/orris-inc/subledger/internal/application/catalog/dto"
	catalogusecases "github.com/orris-inc/subledger/internal/application/catalog/usecases"
	ledgerusecases "github.com/orris-inc/subledger/internal/application/ledger/usecases"
	regdto "github.com/orris-inc/subledger/internal/application/registration/dto"
	regusecases "github.com/orris-inc/subledger/internal/application/registration/usecases"
	subdto "github.com/orris-inc/subledger/internal/application/subscription/dto"
	subusecases "github.com/orris-inc/subledger/internal/application/subscription/usecases"
	tokenusecases "github.com/orris-inc/subledger/internal/application/token/usecases"
	"github.com/orris-inc/subledger/internal/domain/shared"
)

// Use case interfaces for RegistrationHandler

type registerUseCase interface {
	Execute(ctx context.Context, cmd regusecases.RegisterCommand) (*regdto.RegistrationDTO, error)
}

type updateMetadataUseCase interface {
	Execute(ctx context.Context, cmd regusecases.UpdateMetadataCommand) (*regdto.RegistrationDTO, error)
}

type getRegistrationUseCase interface {
	Execute(ctx context.Context, query regusecases.GetRegistrationQuery) (*regdto.RegistrationDTO, error)
}

// Use case interfaces for CatalogHandler

type addVariantUseCase interface {
	Execute(ctx context.Context, cmd catalogusecases.AddVariantCommand) (*catalogdto.VariantDTO, error)
}

type setAvailableUseCase interface {
	Execute(ctx context.Context, cmd catalogusecases.SetAvailableCommand) (*catalogdto.VariantDTO, error)
}

type getVariantUseCase interface {
	Execute(ctx context.Context, id uint64) (*catalogdto.VariantDTO, error)
}

type listVariantsUseCase interface {
	Execute(ctx context.Context, query catalogusecases.ListVariantsQuery) (*catalogusecases.ListVariantsResult, error)
}

// Use case interfaces for SubscriptionHandler

type subscribeUseCase interface {
	Execute(ctx context.Context, cmd subusecases.SubscribeCommand) (*subdto.SubscriptionDTO, error)
}

type unsubscribeUseCase interface {
	Execute(ctx context.Context, cmd subusecases.UnsubscribeCommand) (*subdto.UnsubscribeResultDTO, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, identity shared.Identity) (*subdto.SubscriptionDTO, error)
}

type hasActiveSubscriptionUseCase interface {
	Execute(ctx context.Context, identity shared.Identity) (bool, error)
}

// Use case interfaces for TokenHandler

type approveUseCase interface {
	Execute(ctx context.Context, cmd tokenusecases.ApproveCommand) (*tokenusecases.AllowanceResult, error)
}

type transferUseCase interface {
	Execute(ctx context.Context, cmd tokenusecases.TransferCommand) (*tokenusecases.BalanceResult, error)
}

type getBalanceUseCase interface {
	Execute(ctx context.Context, identity shared.Identity) (*tokenusecases.BalanceResult, error)
}

// Use case interfaces for EventHandler

type listEventsUseCase interface {
	Execute(ctx context.Context, query ledgerusecases.ListEventsQuery) (*ledgerusecases.ListEventsResult, error)
}
