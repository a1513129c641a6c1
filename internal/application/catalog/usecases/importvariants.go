package usecases

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/subledger/internal/application/catalog/dto"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// ParseVariantFile decodes a YAML sequence of {cost, ttl, available}
// entries. Available defaults to true when omitted. The whole file is
// rejected when any entry is out of range.
func ParseVariantFile(r io.Reader) ([]AddVariantCommand, error) {
	var entries []struct {
		Cost       uint64 `yaml:"cost"`
		TimeToLive uint64 `yaml:"ttl"`
		Available  *bool  `yaml:"available"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse variant file: %w", err)
	}

	cmds := make([]AddVariantCommand, 0, len(entries))
	for i, e := range entries {
		if err := catalog.ValidateTerms(e.Cost, e.TimeToLive); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		available := true
		if e.Available != nil {
			available = *e.Available
		}
		cmds = append(cmds, AddVariantCommand{Cost: e.Cost, TimeToLive: e.TimeToLive, Available: available})
	}
	return cmds, nil
}

// ImportVariantsUseCase issues variants in file order, one transaction per
// variant. It stops at the first failure; variants issued before it stay.
type ImportVariantsUseCase struct {
	addVariant *AddVariantUseCase
	logger     logger.Interface
}

func NewImportVariantsUseCase(addVariant *AddVariantUseCase, logger logger.Interface) *ImportVariantsUseCase {
	return &ImportVariantsUseCase{
		addVariant: addVariant,
		logger:     logger,
	}
}

func (uc *ImportVariantsUseCase) Execute(ctx context.Context, r io.Reader) ([]*dto.VariantDTO, error) {
	cmds, err := ParseVariantFile(r)
	if err != nil {
		return nil, err
	}

	issued := make([]*dto.VariantDTO, 0, len(cmds))
	for i, cmd := range cmds {
		v, err := uc.addVariant.Execute(ctx, cmd)
		if err != nil {
			return issued, fmt.Errorf("failed to import entry %d: %w", i, err)
		}
		issued = append(issued, v)
	}

	uc.logger.Infow("variants imported", "count", len(issued))
	return issued, nil
}
