// Package factors provides the read-only emission-factor catalog used by the
// calculation engine. Factors are loaded once from an embedded, versioned
// dataset and never mutated; a single Catalog can be shared across any number
// of concurrent calculations.
package factors

// Emission scopes per the GHG Protocol.
const (
	Scope1 = 1 // direct emissions (combustion on site, company vehicles)
	Scope2 = 2 // purchased energy
	Scope3 = 3 // other value-chain emissions
)

// Emission-factor categories as they appear in the dataset.
const (
	CategoryStationaryCombustion = "stationary_combustion"
	CategoryMobileCombustion     = "mobile_combustion"
	CategoryPurchasedElectricity = "purchased_electricity"
	CategoryFuelEnergyRelated    = "fuel_energy_related"
	CategoryBusinessTravel       = "business_travel"
)

// EmissionFactor is one immutable catalog entry: a coefficient in kg CO2e per
// physical unit plus the provenance needed to audit where that coefficient
// came from in the published conversion-factor workbook.
type EmissionFactor struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Scope    int    `json:"scope"`
	Category string `json:"category"`

	// Unit is the canonical unit token activity inputs must match
	// (e.g. "kWh", "litres", "m3", "therms", "km").
	Unit      string `json:"unit"`
	UnitLabel string `json:"unit_label"`

	// KgCO2ePerUnit is the combined coefficient. The optional per-gas split
	// is carried when the source publishes one; the split is informational
	// and never used in calculation.
	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit"`
	KgCO2PerUnit  float64 `json:"kg_co2_per_unit,omitempty"`
	KgCH4PerUnit  float64 `json:"kg_ch4_per_unit,omitempty"`
	KgN2OPerUnit  float64 `json:"kg_n2o_per_unit,omitempty"`

	// Provenance triple locating the coefficient in the source workbook.
	SourceTable  string `json:"source_table"`
	SourceRow    string `json:"source_row"`
	SourceColumn string `json:"source_column"`

	// DataQualityTier ranks how directly the underlying data was measured:
	// 1 = metered/direct, 4 = broad estimate.
	DataQualityTier int `json:"data_quality_tier"`

	// GHGProtocolCategory is the Scope 3 category number, when applicable
	// (3 = fuel- and energy-related activities, 6 = business travel).
	GHGProtocolCategory int `json:"ghg_protocol_category,omitempty"`
}

// Meta describes the provenance of one dataset load. Version is shared by
// every factor in the load and is stamped into each calculation result.
type Meta struct {
	Version       string `json:"version"`
	Source        string `json:"source"`
	Publisher     string `json:"publisher"`
	EffectiveFrom string `json:"effective_from"`
	URL           string `json:"url"`
}

// dataset is the on-disk shape of the embedded factor table.
type dataset struct {
	Meta    Meta                      `json:"_meta"`
	Factors map[string]EmissionFactor `json:"factors"`
}
