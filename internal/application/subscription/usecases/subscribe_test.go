package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subledger/internal/application/common"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/shared/guard"
)

type failingEventLog struct {
	ledger.EventLog
	err error
}

func (l failingEventLog) Append(context.Context, ...events.DomainEvent) error { return l.err }

// =====================================================================
// TestSubscribeUseCase
// =====================================================================

func TestSubscribeUseCase_ChargesExactCost(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, true)
	uc := f.subscribeUseCase(SubscribeOptions{})

	result, err := uc.Execute(context.Background(), SubscribeCommand{Identity: alice, VariantID: id})
	require.NoError(t, err)

	assert.True(t, result.Active)
	assert.Equal(t, "active", result.State)
	require.NotNil(t, result.ExpiresAt)
	assert.Equal(t, f.clock.Now().Add(time.Hour), *result.ExpiresAt)
	assert.Equal(t, uint64(100), result.AmountPaid)

	assert.Equal(t, uint64(900), f.balance(t, alice))
	assert.Equal(t, uint64(100), f.balance(t, beneficiary))

	allowance, err := f.tokens.Allowance(context.Background(), alice, service)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), allowance)

	records, total, err := f.eventLog.List(context.Background(), ledger.EventFilter{EventType: subscription.EventTypeSubscribed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, alice.String(), records[0].AggregateID)
	assert.JSONEq(t, `1709254800`, string(mustField(t, records[0].Payload, "expires_at")))

	assert.Equal(t, 1, f.cache.sets)
}

func TestSubscribeUseCase_SingleActiveSubscription(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, true)
	uc := f.subscribeUseCase(SubscribeOptions{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	assert.ErrorIs(t, err, subscription.ErrAlreadyActive)
	assert.Equal(t, uint64(900), f.balance(t, alice), "a rejected subscribe charges nothing")

	f.clock.Advance(time.Hour - time.Second)
	_, err = uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	assert.ErrorIs(t, err, subscription.ErrAlreadyActive)

	f.clock.Advance(time.Second)
	result, err := uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	require.NoError(t, err, "expiry is inclusive of the stored timestamp")
	assert.Equal(t, f.clock.Now().Add(time.Hour), *result.ExpiresAt)
	assert.Equal(t, uint64(800), f.balance(t, alice))
}

func TestSubscribeUseCase_UnknownVariant(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	uc := f.subscribeUseCase(SubscribeOptions{})

	_, err := uc.Execute(context.Background(), SubscribeCommand{Identity: alice, VariantID: 9})
	assert.ErrorIs(t, err, catalog.ErrVariantNotFound)
	assert.Equal(t, uint64(1_000), f.balance(t, alice))
}

func TestSubscribeUseCase_PaymentFailuresRollBack(t *testing.T) {
	tests := []struct {
		name      string
		balance   uint64
		allowance uint64
		wantErr   error
	}{
		{name: "insufficient funds", balance: 50, allowance: 1_000, wantErr: payment.ErrInsufficientFunds},
		{name: "no allowance", balance: 1_000, allowance: 0, wantErr: payment.ErrTransferRejected},
		{name: "allowance below cost", balance: 1_000, allowance: 99, wantErr: payment.ErrTransferRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			f.fund(t, alice, tt.balance, tt.allowance)
			id := f.addVariant(t, 100, 3600, true)
			ctx := context.Background()

			_, err := f.subscribeUseCase(SubscribeOptions{}).Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
			require.ErrorIs(t, err, tt.wantErr)

			sub, err := f.subscriptions.Get(ctx, alice)
			require.NoError(t, err)
			assert.Nil(t, sub, "the record written before payment is rolled back")
			assert.Equal(t, tt.balance, f.balance(t, alice))

			_, total, err := f.eventLog.List(ctx, ledger.EventFilter{AggregateID: alice.String()})
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Zero(t, f.cache.sets)
		})
	}
}

func TestSubscribeUseCase_EventLogFailureRefundsPayment(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, true)
	f.eventLog = failingEventLog{err: errors.New("log unavailable")}

	_, err := f.subscribeUseCase(SubscribeOptions{}).Execute(context.Background(), SubscribeCommand{Identity: alice, VariantID: id})
	require.Error(t, err)
	assert.Equal(t, uint64(1_000), f.balance(t, alice))
	assert.Zero(t, f.balance(t, beneficiary))
}

func TestSubscribeUseCase_ZeroCostNeedsNoAllowance(t *testing.T) {
	f := newEngineFixture(t)
	id := f.addVariant(t, 0, 60, true)

	result, err := f.subscribeUseCase(SubscribeOptions{}).Execute(context.Background(), SubscribeCommand{Identity: bob, VariantID: id})
	require.NoError(t, err)
	assert.True(t, result.Active)
}

func TestSubscribeUseCase_ZeroTimeToLiveRejected(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 0, true)

	_, err := f.subscribeUseCase(SubscribeOptions{}).Execute(context.Background(), SubscribeCommand{Identity: alice, VariantID: id})
	assert.ErrorIs(t, err, subscription.ErrInvalidTimeToLive)
	assert.Equal(t, uint64(1_000), f.balance(t, alice))
}

func TestSubscribeUseCase_Availability(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	f.fund(t, bob, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, false)
	ctx := context.Background()

	_, err := f.subscribeUseCase(SubscribeOptions{StrictAvailability: true}).Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	assert.ErrorIs(t, err, subscription.ErrVariantUnavailable)

	_, err = f.subscribeUseCase(SubscribeOptions{}).Execute(ctx, SubscribeCommand{Identity: bob, VariantID: id})
	assert.NoError(t, err, "the flag is informational unless strict")
}

func TestSubscribeUseCase_RequireRegistration(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, true)
	uc := f.subscribeUseCase(SubscribeOptions{RequireRegistration: true})
	ctx := context.Background()

	_, err := uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	require.ErrorIs(t, err, registration.ErrNotRegistered)

	reg, err := registration.NewRegistration(alice, "ipfs://alice", f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.registrations.Create(ctx, reg))

	_, err = uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
	assert.NoError(t, err)
}

func TestSubscribeUseCase_ReentrantCallRejected(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, true)
	uc := f.subscribeUseCase(SubscribeOptions{})

	err := f.guard.Do(context.Background(), alice.String(), func(ctx context.Context) error {
		_, err := uc.Execute(ctx, SubscribeCommand{Identity: alice, VariantID: id})
		return err
	})
	assert.ErrorIs(t, err, guard.ErrReentrantCall)
	assert.Equal(t, uint64(1_000), f.balance(t, alice))
}

func TestSubscribeUseCase_ConcurrentCallsChargeOnce(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 10_000, 10_000)
	id := f.addVariant(t, 100, 3600, true)
	uc := f.subscribeUseCase(SubscribeOptions{})

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), SubscribeCommand{Identity: alice, VariantID: id})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, subscription.ErrAlreadyActive) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
	assert.Equal(t, uint64(9_900), f.balance(t, alice))
}

func TestSubscribeUseCase_PublishesAfterCommit(t *testing.T) {
	f := newEngineFixture(t)
	f.fund(t, alice, 1_000, 1_000)
	id := f.addVariant(t, 100, 3600, true)

	var published []events.DomainEvent
	pub := &recordingPublisher{onPublish: func(evts []events.DomainEvent) { published = append(published, evts...) }}
	uc := NewSubscribeUseCase(
		f.subscriptions, f.variants, f.registrations, f.tokens, f.eventLog,
		f.txMgr, f.guard, pub, nil, f.clock, SubscribeOptions{Beneficiary: beneficiary}, f.log,
	)

	_, err := uc.Execute(context.Background(), SubscribeCommand{Identity: alice, VariantID: id})
	require.NoError(t, err)
	require.Len(t, published, 1)

	evt, ok := published[0].(*subscription.SubscribedEvent)
	require.True(t, ok)
	assert.Equal(t, alice, evt.Identity)
	assert.Equal(t, id, evt.VariantID)
	assert.Equal(t, uint64(100), evt.Cost)
}

type recordingPublisher struct {
	common.NopPublisher
	onPublish func([]events.DomainEvent)
}

func (p *recordingPublisher) PublishAll(evts []events.DomainEvent) error {
	p.onPublish(evts)
	return nil
}
