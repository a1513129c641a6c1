package usecases

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

type mockVariantRepository struct {
	CreateFunc             func(ctx context.Context, v *catalog.Variant) error
	GetByIDFunc            func(ctx context.Context, id uint64) (*catalog.Variant, error)
	UpdateAvailabilityFunc func(ctx context.Context, v *catalog.Variant) error
	ListFunc               func(ctx context.Context, filter catalog.VariantFilter) ([]*catalog.Variant, int64, error)
}

func (m *mockVariantRepository) Create(ctx context.Context, v *catalog.Variant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *mockVariantRepository) GetByID(ctx context.Context, id uint64) (*catalog.Variant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockVariantRepository) UpdateAvailability(ctx context.Context, v *catalog.Variant) error {
	if m.UpdateAvailabilityFunc != nil {
		return m.UpdateAvailabilityFunc(ctx, v)
	}
	return nil
}

func (m *mockVariantRepository) List(ctx context.Context, filter catalog.VariantFilter) ([]*catalog.Variant, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockIDSequence struct {
	NextVariantIDFunc func(ctx context.Context) (uint64, error)
}

func (m *mockIDSequence) NextVariantID(ctx context.Context) (uint64, error) {
	if m.NextVariantIDFunc != nil {
		return m.NextVariantIDFunc(ctx)
	}
	return 0, nil
}

type mockEventLog struct {
	AppendFunc func(ctx context.Context, evts ...events.DomainEvent) error
	appended   []events.DomainEvent
}

func (m *mockEventLog) Append(ctx context.Context, evts ...events.DomainEvent) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, evts...)
	}
	m.appended = append(m.appended, evts...)
	return nil
}

func (m *mockEventLog) List(ctx context.Context, filter ledger.EventFilter) ([]*ledger.EventRecord, int64, error) {
	return nil, 0, nil
}
