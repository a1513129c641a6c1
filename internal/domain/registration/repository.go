package registration

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/shared"
)

type Repository interface {
	// Create fails with ErrAlreadyRegistered when the identity exists.
	Create(ctx context.Context, r *Registration) error
	// Update fails with ErrStaleVersion when the stored version moved on and
	// with ErrNotRegistered when the record is gone.
	Update(ctx context.Context, r *Registration) error
	// GetByIdentity returns nil, nil when the identity is not registered.
	GetByIdentity(ctx context.Context, identity shared.Identity) (*Registration, error)
	// GetForUpdate is GetByIdentity with the row locked until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, identity shared.Identity) (*Registration, error)
	Exists(ctx context.Context, identity shared.Identity) (bool, error)
}
