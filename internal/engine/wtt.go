package engine

import "strings"

// WTTNotePrefix tags synthesized upstream lines. Downstream consumers rely on
// this exact prefix to distinguish derived lines from user-supplied ones.
const WTTNotePrefix = "Auto WTT for "

// wttFactorBySource maps a primary factor id to its upstream (well-to-tank /
// transmission-and-distribution-loss) counterpart. The mapping is a fixed
// policy table, not user-configurable.
var wttFactorBySource = map[string]string{
	"natural_gas_kwh":    "natural_gas_wtt",
	"natural_gas_m3":     "natural_gas_wtt",
	"natural_gas_therms": "natural_gas_wtt",
	"petrol_litres":      "petrol_wtt",
	"petrol_km":          "petrol_wtt",
	"diesel_litres":      "diesel_wtt",
	"diesel_km":          "diesel_wtt",
	"van_diesel_km":      "diesel_wtt",
	"electricity_kwh":    "electricity_td_losses",
}

// wttUnitByFactor gives each upstream factor's native unit. Quantities already
// in this unit pass through unchanged; everything else is reconciled below.
var wttUnitByFactor = map[string]string{
	"natural_gas_wtt":       "kWh",
	"petrol_wtt":            "litres",
	"diesel_wtt":            "litres",
	"electricity_td_losses": "kWh",
}

// litresPerKm converts distance-based fuel inputs to an equivalent fuel
// volume, using a fixed consumption rate per source type.
var litresPerKm = map[string]float64{
	"petrol_km":     0.08,
	"diesel_km":     0.07,
	"van_diesel_km": 0.10,
}

// Calorific conversion factors for gas volume to energy.
const (
	gasM3ToKWh     = 11.163
	gasThermsToKWh = 29.3071
)

// ExpandWTT synthesizes one upstream activity input for every primary input
// whose factor has a registered well-to-tank counterpart. Synthesized records
// copy the originating record's period, site, and estimated flag, take the id
// "{original_id}_wtt", and are tagged with WTTNotePrefix plus the original
// factor id. Synthesized records are never expanded again.
func ExpandWTT(inputs []ActivityInput) []ActivityInput {
	var derived []ActivityInput
	for _, input := range inputs {
		wttFactorID, ok := wttFactorBySource[input.FactorID]
		if !ok {
			continue
		}

		quantity := input.Quantity
		switch {
		case litresPerKm[input.FactorID] > 0:
			quantity = round(input.Quantity*litresPerKm[input.FactorID], aggregateDP)
		case input.FactorID == "natural_gas_m3":
			quantity = round(input.Quantity*gasM3ToKWh, aggregateDP)
		case input.FactorID == "natural_gas_therms":
			quantity = round(input.Quantity*gasThermsToKWh, aggregateDP)
		}

		derived = append(derived, ActivityInput{
			ID:          input.ID + "_wtt",
			SourceType:  wttFactorID,
			FactorID:    wttFactorID,
			Quantity:    quantity,
			Unit:        wttUnitByFactor[wttFactorID],
			PeriodStart: input.PeriodStart,
			PeriodEnd:   input.PeriodEnd,
			Site:        input.Site,
			Estimated:   input.Estimated,
			Notes:       WTTNotePrefix + input.FactorID,
		})
	}
	return derived
}

// IsDerived reports whether an input was synthesized by ExpandWTT.
func IsDerived(input ActivityInput) bool {
	return strings.HasPrefix(input.Notes, WTTNotePrefix)
}
