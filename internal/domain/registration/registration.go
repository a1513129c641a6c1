// Package registration models the identity registry that gates access to
// subscriptions.
package registration

import (
	"fmt"
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

// Registration is the registry entry of one identity. Its existence means
// the identity is registered; there is no unregister.
type Registration struct {
	identity     shared.Identity
	metadataURL  string
	registeredAt time.Time
	updatedAt    time.Time
	version      int

	events.Recorder
}

// NewRegistration registers identity with opaque metadata.
func NewRegistration(identity shared.Identity, metadataURL string, now time.Time) (*Registration, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("identity is required")
	}

	r := &Registration{
		identity:     identity,
		metadataURL:  metadataURL,
		registeredAt: now,
		updatedAt:    now,
		version:      1,
	}
	r.Record(NewRegisteredEvent(identity, metadataURL, now))
	return r, nil
}

// ReconstructRegistration reconstructs a registration from persistence
func ReconstructRegistration(identity shared.Identity, metadataURL string, registeredAt, updatedAt time.Time, version int) (*Registration, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("identity is required")
	}
	return &Registration{
		identity:     identity,
		metadataURL:  metadataURL,
		registeredAt: registeredAt,
		updatedAt:    updatedAt,
		version:      version,
	}, nil
}

func (r *Registration) Identity() shared.Identity { return r.identity }
func (r *Registration) MetadataURL() string       { return r.metadataURL }
func (r *Registration) RegisteredAt() time.Time   { return r.registeredAt }
func (r *Registration) UpdatedAt() time.Time      { return r.updatedAt }
func (r *Registration) Version() int              { return r.version }

// UpdateMetadata replaces the metadata verbatim. Setting the same value is
// still recorded as a change.
func (r *Registration) UpdateMetadata(metadataURL string, now time.Time) {
	old := r.metadataURL
	r.metadataURL = metadataURL
	r.updatedAt = now
	r.version++
	r.Record(NewMetadataChangedEvent(r.identity, old, metadataURL, now))
}
