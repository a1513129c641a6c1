package dto

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
)

type RegistrationDTO struct {
	Identity     string     `json:"identity"`
	Registered   bool       `json:"registered"`
	MetadataURL  string     `json:"metadata_url"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ToRegistrationDTO renders r, or an unregistered entry for identity when r
// is nil.
func ToRegistrationDTO(identity shared.Identity, r *registration.Registration) *RegistrationDTO {
	if r == nil {
		return &RegistrationDTO{Identity: identity.String()}
	}
	registeredAt := r.RegisteredAt()
	updatedAt := r.UpdatedAt()
	return &RegistrationDTO{
		Identity:     r.Identity().String(),
		Registered:   true,
		MetadataURL:  r.MetadataURL(),
		RegisteredAt: &registeredAt,
		UpdatedAt:    &updatedAt,
	}
}
