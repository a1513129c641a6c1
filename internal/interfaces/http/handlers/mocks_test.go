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

var (
	alice = shared.MustParseIdentity("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	bob   = shared.MustParseIdentity("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterUC struct {
	result *regdto.RegistrationDTO
	err    error
	cmd    regusecases.RegisterCommand
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd regusecases.RegisterCommand) (*regdto.RegistrationDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockUpdateMetadataUC struct {
	result *regdto.RegistrationDTO
	err    error
}

func (m *mockUpdateMetadataUC) Execute(ctx context.Context, cmd regusecases.UpdateMetadataCommand) (*regdto.RegistrationDTO, error) {
	return m.result, m.err
}

type mockGetRegistrationUC struct {
	result *regdto.RegistrationDTO
	err    error
}

func (m *mockGetRegistrationUC) Execute(ctx context.Context, query regusecases.GetRegistrationQuery) (*regdto.RegistrationDTO, error) {
	return m.result, m.err
}

type mockAddVariantUC struct {
	result *catalogdto.VariantDTO
	err    error
	cmd    catalogusecases.AddVariantCommand
}

func (m *mockAddVariantUC) Execute(ctx context.Context, cmd catalogusecases.AddVariantCommand) (*catalogdto.VariantDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockSetAvailableUC struct {
	result *catalogdto.VariantDTO
	err    error
	cmd    catalogusecases.SetAvailableCommand
}

func (m *mockSetAvailableUC) Execute(ctx context.Context, cmd catalogusecases.SetAvailableCommand) (*catalogdto.VariantDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetVariantUC struct {
	result *catalogdto.VariantDTO
	err    error
}

func (m *mockGetVariantUC) Execute(ctx context.Context, id uint64) (*catalogdto.VariantDTO, error) {
	return m.result, m.err
}

type mockListVariantsUC struct {
	result *catalogusecases.ListVariantsResult
	err    error
	query  catalogusecases.ListVariantsQuery
}

func (m *mockListVariantsUC) Execute(ctx context.Context, query catalogusecases.ListVariantsQuery) (*catalogusecases.ListVariantsResult, error) {
	m.query = query
	return m.result, m.err
}

type mockSubscribeUC struct {
	result *subdto.SubscriptionDTO
	err    error
	cmd    subusecases.SubscribeCommand
}

func (m *mockSubscribeUC) Execute(ctx context.Context, cmd subusecases.SubscribeCommand) (*subdto.SubscriptionDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockUnsubscribeUC struct {
	result *subdto.UnsubscribeResultDTO
	err    error
}

func (m *mockUnsubscribeUC) Execute(ctx context.Context, cmd subusecases.UnsubscribeCommand) (*subdto.UnsubscribeResultDTO, error) {
	return m.result, m.err
}

type mockGetSubscriptionUC struct {
	result *subdto.SubscriptionDTO
	err    error
}

func (m *mockGetSubscriptionUC) Execute(ctx context.Context, identity shared.Identity) (*subdto.SubscriptionDTO, error) {
	return m.result, m.err
}

type mockHasActiveUC struct {
	active bool
	err    error
}

func (m *mockHasActiveUC) Execute(ctx context.Context, identity shared.Identity) (bool, error) {
	return m.active, m.err
}

type mockApproveUC struct {
	result *tokenusecases.AllowanceResult
	err    error
	cmd    tokenusecases.ApproveCommand
}

func (m *mockApproveUC) Execute(ctx context.Context, cmd tokenusecases.ApproveCommand) (*tokenusecases.AllowanceResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockTransferUC struct {
	result *tokenusecases.BalanceResult
	err    error
	cmd    tokenusecases.TransferCommand
}

func (m *mockTransferUC) Execute(ctx context.Context, cmd tokenusecases.TransferCommand) (*tokenusecases.BalanceResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetBalanceUC struct {
	result *tokenusecases.BalanceResult
	err    error
}

func (m *mockGetBalanceUC) Execute(ctx context.Context, identity shared.Identity) (*tokenusecases.BalanceResult, error) {
	return m.result, m.err
}

type mockListEventsUC struct {
	result *ledgerusecases.ListEventsResult
	err    error
	query  ledgerusecases.ListEventsQuery
}

func (m *mockListEventsUC) Execute(ctx context.Context, query ledgerusecases.ListEventsQuery) (*ledgerusecases.ListEventsResult, error) {
	m.query = query
	return m.result, m.err
}
