package catalog

import "context"

// IDSequence hands out catalog ids, 0 first, without gaps among committed
// variants. It must be called inside the transaction that stores the variant.
type IDSequence interface {
	NextVariantID(ctx context.Context) (uint64, error)
}

type VariantRepository interface {
	Create(ctx context.Context, v *Variant) error
	// GetByID returns nil, nil when no variant has the id.
	GetByID(ctx context.Context, id uint64) (*Variant, error)
	UpdateAvailability(ctx context.Context, v *Variant) error
	// List returns variants ordered by id.
	List(ctx context.Context, filter VariantFilter) ([]*Variant, int64, error)
}

type VariantFilter struct {
	Available *bool
	Page      int
	PageSize  int
}
