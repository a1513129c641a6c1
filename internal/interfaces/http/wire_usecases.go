package http

import (
	catalogUsecases "github.com/orris-inc/subledger/internal/application/catalog/usecases"
	ledgerUsecases "github.com/orris-inc/subledger/internal/application/ledger/usecases"
	registrationUsecases "github.com/orris-inc/subledger/internal/application/registration/usecases"
	"github.com/orris-inc/subledger/internal/application/subscription"
	subscriptionUsecases "github.com/orris-inc/subledger/internal/application/subscription/usecases"
	tokenUsecases "github.com/orris-inc/subledger/internal/application/token/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Registration
	registerUC        *registrationUsecases.RegisterUseCase
	updateMetadataUC  *registrationUsecases.UpdateMetadataUseCase
	getRegistrationUC *registrationUsecases.GetRegistrationUseCase

	// Catalog
	addVariantUC     *catalogUsecases.AddVariantUseCase
	setAvailableUC   *catalogUsecases.SetAvailableUseCase
	getVariantUC     *catalogUsecases.GetVariantUseCase
	listVariantsUC   *catalogUsecases.ListVariantsUseCase
	importVariantsUC *catalogUsecases.ImportVariantsUseCase

	// Subscription
	subscribeUC       *subscriptionUsecases.SubscribeUseCase
	unsubscribeUC     *subscriptionUsecases.UnsubscribeUseCase
	hasActiveUC       *subscriptionUsecases.HasActiveSubscriptionUseCase
	getSubscriptionUC *subscriptionUsecases.GetSubscriptionUseCase
	engine            *subscription.Engine

	// Token
	approveUC     *tokenUsecases.ApproveUseCase
	transferUC    *tokenUsecases.TransferUseCase
	getBalanceUC  *tokenUsecases.GetBalanceUseCase
	mintGenesisUC *tokenUsecases.MintGenesisUseCase

	// Ledger
	listEventsUC *ledgerUsecases.ListEventsUseCase
}
