package engine

import (
	"fmt"
	"time"
)

// PriceLine converts one activity input into an emission-line result using
// the engine's factor catalog.
//
// Failure modes:
//   - factors.ErrUnknownFactor if the referenced factor id is not in the catalog
//   - ErrUnitMismatch if the input's unit differs from the factor's unit
//   - ErrInvalidQuantity if the quantity is negative
//
// The computation is kg CO2e = round(quantity × coefficient, 6dp) and
// t CO2e = round(kg CO2e / 1000, 6dp). A fresh audit entry with the rendered
// formula and calculation timestamp is attached to the result.
func (e *Engine) PriceLine(input ActivityInput) (EmissionLineResult, error) {
	factor, err := e.catalog.Factor(input.FactorID)
	if err != nil {
		return EmissionLineResult{}, err
	}
	if input.Unit != factor.Unit {
		return EmissionLineResult{}, fmt.Errorf("%w for %q: expected %q, got %q",
			ErrUnitMismatch, factor.ID, factor.Unit, input.Unit)
	}
	if input.Quantity < 0 {
		return EmissionLineResult{}, fmt.Errorf("%w: input %q has quantity %s",
			ErrInvalidQuantity, input.ID, formatNumber(input.Quantity))
	}

	kgCO2e := round(input.Quantity*factor.KgCO2ePerUnit, lineDP)
	tCO2e := round(kgCO2e/1000, lineDP)
	version := e.catalog.Version()

	audit := AuditEntry{
		FactorID:      factor.ID,
		FactorLabel:   factor.Label,
		FactorVersion: version,
		SourceTable:   factor.SourceTable,
		SourceRow:     factor.SourceRow,
		SourceColumn:  factor.SourceColumn,
		KgCO2ePerUnit: factor.KgCO2ePerUnit,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		Formula: fmt.Sprintf("%s %s × %s = %s kg CO2e",
			formatNumber(input.Quantity), factor.Unit,
			formatNumber(factor.KgCO2ePerUnit), formatNumber(kgCO2e)),
		CalculatedAt: e.now().UTC().Format(time.RFC3339),
	}

	return EmissionLineResult{
		Input:           input,
		Factor:          factor,
		FactorVersion:   version,
		KgCO2e:          kgCO2e,
		TCO2e:           tCO2e,
		Scope:           factor.Scope,
		Category:        factor.Category,
		DataQualityTier: factor.DataQualityTier,
		Audit:           audit,
	}, nil
}
