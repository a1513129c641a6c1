package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/subledger/internal/shared/db"
)

type mockRegistrationRepository struct {
	CreateFunc        func(ctx context.Context, r *registration.Registration) error
	UpdateFunc        func(ctx context.Context, r *registration.Registration) error
	GetByIdentityFunc func(ctx context.Context, identity shared.Identity) (*registration.Registration, error)
	GetForUpdateFunc  func(ctx context.Context, identity shared.Identity) (*registration.Registration, error)
	ExistsFunc        func(ctx context.Context, identity shared.Identity) (bool, error)
}

func (m *mockRegistrationRepository) Create(ctx context.Context, r *registration.Registration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockRegistrationRepository) Update(ctx context.Context, r *registration.Registration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockRegistrationRepository) GetByIdentity(ctx context.Context, identity shared.Identity) (*registration.Registration, error) {
	if m.GetByIdentityFunc != nil {
		return m.GetByIdentityFunc(ctx, identity)
	}
	return nil, nil
}

func (m *mockRegistrationRepository) GetForUpdate(ctx context.Context, identity shared.Identity) (*registration.Registration, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, identity)
	}
	return nil, nil
}

func (m *mockRegistrationRepository) Exists(ctx context.Context, identity shared.Identity) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, identity)
	}
	return false, nil
}

type mockEventLog struct {
	AppendFunc func(ctx context.Context, evts ...events.DomainEvent) error
	ListFunc   func(ctx context.Context, filter ledger.EventFilter) ([]*ledger.EventRecord, int64, error)

	mu       sync.Mutex
	appended []events.DomainEvent
}

func (m *mockEventLog) Append(ctx context.Context, evts ...events.DomainEvent) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, evts...)
	}
	m.mu.Lock()
	m.appended = append(m.appended, evts...)
	m.mu.Unlock()
	return nil
}

func (m *mockEventLog) List(ctx context.Context, filter ledger.EventFilter) ([]*ledger.EventRecord, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockPublisher struct {
	PublishAllFunc func(evts []events.DomainEvent) error

	mu        sync.Mutex
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	return m.PublishAll([]events.DomainEvent{event})
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.mu.Lock()
	m.published = append(m.published, evts...)
	m.mu.Unlock()
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

func newTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	return db.NewTransactionManager(testdb.New(t))
}
