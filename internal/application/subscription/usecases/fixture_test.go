package usecases

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/application/common"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/subledger/internal/infrastructure/repository"
	"github.com/orris-inc/subledger/internal/infrastructure/tokenledger"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/guard"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

var (
	owner       = shared.MustParseIdentity("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	service     = shared.MustParseIdentity("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	beneficiary = shared.MustParseIdentity("0x90f79bf6eb2c4f870365e785982e1f101e93b906")
	alice       = shared.MustParseIdentity("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	bob         = shared.MustParseIdentity("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
)

type engineFixture struct {
	gdb           *gorm.DB
	clock         *clock.FakeClock
	txMgr         *db.TransactionManager
	guard         *guard.Guard
	tokens        *tokenledger.Ledger
	variants      catalog.VariantRepository
	sequences     *repository.SequenceRepositoryImpl
	registrations registration.Repository
	subscriptions subscription.Repository
	eventLog      ledger.EventLog
	cache         *memoryStatusCache
	log           logger.Interface
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewNop()
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	sequences := repository.NewSequenceRepository(gdb, log)

	f := &engineFixture{
		gdb:           gdb,
		clock:         clk,
		txMgr:         db.NewTransactionManager(gdb),
		guard:         guard.New(),
		tokens:        tokenledger.New(gdb, service, clk, log),
		variants:      repository.NewVariantRepository(gdb, log),
		sequences:     sequences,
		registrations: repository.NewRegistrationRepository(gdb, log),
		subscriptions: repository.NewSubscriptionRepository(gdb, log),
		eventLog:      repository.NewEventLogRepository(gdb, sequences, log),
		cache:         newMemoryStatusCache(),
		log:           log,
	}
	require.NoError(t, f.tokens.Mint(context.Background(), owner, 1_000_000))
	return f
}

// fund gives identity tokens and lets the service pull up to allowance.
func (f *engineFixture) fund(t *testing.T, identity shared.Identity, amount, allowance uint64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.tokens.Transfer(ctx, owner, identity, amount))
	require.NoError(t, f.tokens.Approve(ctx, identity, service, allowance))
}

func (f *engineFixture) addVariant(t *testing.T, cost, ttl uint64, available bool) uint64 {
	t.Helper()
	var id uint64
	err := f.txMgr.RunInTransaction(context.Background(), func(ctx context.Context) error {
		var err error
		id, err = f.sequences.NextVariantID(ctx)
		if err != nil {
			return err
		}
		return f.variants.Create(ctx, catalog.NewVariant(id, cost, ttl, available, f.clock.Now()))
	})
	require.NoError(t, err)
	return id
}

func (f *engineFixture) balance(t *testing.T, identity shared.Identity) uint64 {
	t.Helper()
	b, err := f.tokens.BalanceOf(context.Background(), identity)
	require.NoError(t, err)
	return b
}

func (f *engineFixture) subscribeUseCase(opts SubscribeOptions) *SubscribeUseCase {
	if opts.Beneficiary.IsZero() {
		opts.Beneficiary = beneficiary
	}
	return NewSubscribeUseCase(
		f.subscriptions, f.variants, f.registrations, f.tokens, f.eventLog,
		f.txMgr, f.guard, common.NopPublisher{}, f.cache, f.clock, opts, f.log,
	)
}

func (f *engineFixture) unsubscribeUseCase(policy subscription.RefundPolicy) *UnsubscribeUseCase {
	return NewUnsubscribeUseCase(
		f.subscriptions, f.tokens, f.eventLog, f.txMgr, f.guard,
		common.NopPublisher{}, f.cache, policy, beneficiary, f.clock, f.log,
	)
}

func (f *engineFixture) hasActiveUseCase() *HasActiveSubscriptionUseCase {
	return NewHasActiveSubscriptionUseCase(f.subscriptions, f.cache, f.clock, f.log)
}

type memoryStatusCache struct {
	mu      sync.Mutex
	entries map[shared.Identity]time.Time
	sets    int
	evicts  int
}

func newMemoryStatusCache() *memoryStatusCache {
	return &memoryStatusCache{entries: make(map[shared.Identity]time.Time)}
}

func (c *memoryStatusCache) Get(_ context.Context, identity shared.Identity) (time.Time, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	at, ok := c.entries[identity]
	return at, ok, nil
}

func (c *memoryStatusCache) Set(_ context.Context, identity shared.Identity, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[identity] = expiresAt
	c.sets++
	return nil
}

func (c *memoryStatusCache) Evict(_ context.Context, identity shared.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, identity)
	c.evicts++
	return nil
}

func mustField(t *testing.T, payload []byte, key string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &fields))
	raw, ok := fields[key]
	require.True(t, ok, "payload has no %q", key)
	return raw
}
