package engine

import "fmt"

// Compliance-gap codes, in evaluation order.
const (
	GapMissingScope2    = "MISSING_SCOPE_2"
	GapMissingScope1    = "MISSING_SCOPE_1"
	GapEstimatedData    = "ESTIMATED_DATA"
	GapMissingIntensity = "MISSING_INTENSITY"
)

// DetectGaps inspects the priced lines and intensity context and returns the
// compliance gaps in a fixed order. Checks are evaluated independently; more
// than one gap can fire for the same request.
func DetectGaps(lines []EmissionLineResult, intensity *IntensityMetrics) []GapItem {
	var scope1, scope2, estimated int
	for _, l := range lines {
		switch l.Scope {
		case 1:
			scope1++
		case 2:
			scope2++
		}
		if !IsDerived(l.Input) && l.Input.Estimated {
			estimated++
		}
	}

	gaps := []GapItem{}
	if scope2 == 0 {
		gaps = append(gaps, GapItem{
			Code:           GapMissingScope2,
			Severity:       SeverityCritical,
			Message:        "No Scope 2 electricity data provided.",
			Recommendation: "Add electricity consumption from utility invoices. Required for SECR.",
		})
	}
	if scope1 == 0 {
		gaps = append(gaps, GapItem{
			Code:           GapMissingScope1,
			Severity:       SeverityCritical,
			Message:        "No Scope 1 emissions data provided.",
			Recommendation: "Add natural gas or vehicle fuel data. Required for SECR.",
		})
	}
	if estimated > 0 {
		gaps = append(gaps, GapItem{
			Code:           GapEstimatedData,
			Severity:       SeverityModerate,
			Message:        fmt.Sprintf("%d line(s) use estimated quantities.", estimated),
			Recommendation: "Replace estimates with actual meter reads before final disclosure.",
		})
	}
	if intensity == nil || intensity.Employees <= 0 {
		gaps = append(gaps, GapItem{
			Code:           GapMissingIntensity,
			Severity:       SeverityMinor,
			Message:        "Intensity metrics not provided.",
			Recommendation: "Add employee count and revenue to calculate tCO2e per employee and per £m revenue. Required for SECR.",
		})
	}
	return gaps
}
