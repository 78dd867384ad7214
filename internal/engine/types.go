// Package engine implements the SECR emissions calculation engine: per-line
// conversion of activity data through emission factors, automatic well-to-tank
// expansion, scope aggregation, data-quality and uncertainty scoring, site
// breakdowns, intensity ratios, and compliance-gap detection.
//
// The engine is a pure, synchronous computation. Aside from timestamp and
// identifier generation it is side-effect free, and a single Engine backed by
// one factor catalog is safe for concurrent use.
package engine

import "github.com/rshade/secr-engine/internal/factors"

// ActivityInput is one reported (or synthesized) activity record. Inputs are
// immutable once created and each is priced exactly once per calculation.
type ActivityInput struct {
	ID         string `json:"id"`
	SourceType string `json:"source_type"`
	FactorID   string `json:"factor_id"`

	// Quantity must be non-negative and Unit must equal the referenced
	// factor's unit token.
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	Site      string `json:"site,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Estimated bool   `json:"estimated,omitempty"`
}

// AuditEntry records how one line's result was derived. The formula string is
// reconstructible from the other fields: quantity × coefficient = kg CO2e.
type AuditEntry struct {
	FactorID      string `json:"factor_id"`
	FactorLabel   string `json:"factor_label"`
	FactorVersion string `json:"factor_version"`

	SourceTable  string `json:"source_table"`
	SourceRow    string `json:"source_row"`
	SourceColumn string `json:"source_column"`

	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	Formula       string  `json:"formula"`
	CalculatedAt  string  `json:"calculated_at"`
}

// EmissionLineResult pairs one activity input with its resolved factor and
// computed emissions. Immutable once produced; every line carries exactly one
// audit entry.
type EmissionLineResult struct {
	Input         ActivityInput          `json:"input"`
	Factor        factors.EmissionFactor `json:"factor"`
	FactorVersion string                 `json:"factor_version"`

	KgCO2e float64 `json:"kg_co2e"`
	TCO2e  float64 `json:"t_co2e"`

	Scope           int    `json:"scope"`
	Category        string `json:"category"`
	DataQualityTier int    `json:"data_quality_tier"`

	Audit AuditEntry `json:"audit"`
}

// SiteBreakdown holds per-site running totals. Records without a site label
// are grouped under the "Unassigned" bucket; LineCount counts only primary
// (non-derived) lines.
type SiteBreakdown struct {
	Site      string  `json:"site"`
	TCO2e     float64 `json:"t_co2e"`
	Scope1    float64 `json:"scope_1"`
	Scope2    float64 `json:"scope_2"`
	Scope3    float64 `json:"scope_3"`
	LineCount int     `json:"line_count"`
}

// IntensityMetrics carries optional organisational context and, on output,
// the derived ratios. Each ratio is present only when its denominator was
// supplied and strictly positive.
type IntensityMetrics struct {
	Employees   int     `json:"employees,omitempty"`
	RevenueM    float64 `json:"revenue_m,omitempty"`
	FloorAreaM2 float64 `json:"floor_area_m2,omitempty"`

	PerEmployee  *float64 `json:"per_employee,omitempty"`
	PerRevenueM  *float64 `json:"per_revenue_m,omitempty"`
	PerFloorArea *float64 `json:"per_floor_area,omitempty"`
}

// Gap severity tiers, ordered from most to least urgent.
const (
	SeverityCritical = "critical"
	SeverityModerate = "moderate"
	SeverityMinor    = "minor"
)

// GapItem is one compliance-gap finding.
type GapItem struct {
	Code           string `json:"code"`
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Summary is the aggregated view over all emission lines.
type Summary struct {
	TotalTCO2e  float64 `json:"total_t_co2e"`
	Scope1TCO2e float64 `json:"scope_1_t_co2e"`
	Scope2TCO2e float64 `json:"scope_2_t_co2e"`
	Scope3TCO2e float64 `json:"scope_3_t_co2e"`

	// DataQualityScore is 0-100, higher is better.
	DataQualityScore int `json:"data_quality_score"`

	// EstimatedLines counts primary inputs flagged as estimated; derived
	// well-to-tank lines are excluded to avoid double counting.
	EstimatedLines int `json:"estimated_lines"`

	// UncertaintyPct is the share-weighted uncertainty percentage.
	UncertaintyPct int `json:"uncertainty_pct"`

	// Sites is sorted by descending total t CO2e.
	Sites []SiteBreakdown `json:"sites"`
}

// Metadata records the methodology constants asserted by this engine.
type Metadata struct {
	GHGProtocolConsolidation string `json:"ghg_protocol_consolidation"`
	Scope2Method             string `json:"scope_2_method"`
}

// CalculationRequest is the engine's input boundary.
type CalculationRequest struct {
	OrganisationName     string            `json:"organisation_name"`
	ReportingPeriodStart string            `json:"reporting_period_start"`
	ReportingPeriodEnd   string            `json:"reporting_period_end"`
	Inputs               []ActivityInput   `json:"inputs"`
	Intensity            *IntensityMetrics `json:"intensity,omitempty"`
}

// CalculationResult is the engine's single output artifact. It is created
// once per invocation and never mutated after construction.
type CalculationResult struct {
	ID                   string `json:"id"`
	OrganisationName     string `json:"organisation_name"`
	ReportingPeriodStart string `json:"reporting_period_start"`
	ReportingPeriodEnd   string `json:"reporting_period_end"`
	CalculatedAt         string `json:"calculated_at"`
	FactorVersion        string `json:"factor_version"`

	Lines     []EmissionLineResult `json:"lines"`
	Summary   Summary              `json:"summary"`
	Intensity *IntensityMetrics    `json:"intensity,omitempty"`
	Gaps      []GapItem            `json:"gaps"`
	Metadata  Metadata             `json:"metadata"`
}
