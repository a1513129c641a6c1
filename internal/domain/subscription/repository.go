package subscription

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/shared"
)

type Repository interface {
	// Get returns nil, nil when the identity holds no record.
	Get(ctx context.Context, identity shared.Identity) (*Subscription, error)
	// GetForUpdate is Get with the row locked until the transaction ends.
	GetForUpdate(ctx context.Context, identity shared.Identity) (*Subscription, error)
	// Save inserts or replaces the identity's record.
	Save(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, identity shared.Identity) error
}
