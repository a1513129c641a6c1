package dto

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/catalog"
)

type VariantDTO struct {
	ID         uint64    `json:"id"`
	Cost       uint64    `json:"cost"`
	TimeToLive uint64    `json:"time_to_live"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToVariantDTO(v *catalog.Variant) *VariantDTO {
	if v == nil {
		return nil
	}
	return &VariantDTO{
		ID:         v.ID(),
		Cost:       v.Cost(),
		TimeToLive: v.TimeToLive(),
		Available:  v.IsAvailable(),
		CreatedAt:  v.CreatedAt(),
		UpdatedAt:  v.UpdatedAt(),
	}
}

func ToVariantDTOs(vs []*catalog.Variant) []*VariantDTO {
	out := make([]*VariantDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToVariantDTO(v))
	}
	return out
}
