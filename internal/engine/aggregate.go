package engine

import (
	"math"
	"sort"
)

// tierWeights maps a data-quality tier to its quality weight
// (tier 1 = most direct measurement, highest weight).
var tierWeights = map[int]float64{1: 100, 2: 80, 3: 50, 4: 20}

// tierUncertainty maps a data-quality tier to its uncertainty percentage.
var tierUncertainty = map[int]float64{1: 5, 2: 10, 3: 25, 4: 50}

// estimatedQualityPenalty scales a line's quality weight when its input is
// flagged as estimated.
const estimatedQualityPenalty = 0.6

// estimatedUncertaintyBump is added to a line's uncertainty when its input is
// flagged as estimated.
const estimatedUncertaintyBump = 15.0

// Aggregate combines all emission-line results (primary and derived) into
// scope totals, a data-quality score, an uncertainty estimate, and the
// per-site breakdown. It is a pure function of the line list.
//
// Scope totals round once at 4 decimal places; site totals apply 4-decimal
// rounding at every accumulation step. The two policies can disagree by
// sub-0.0001 t CO2e amounts and are kept deliberately distinct, since
// unifying them would change disclosed figures.
func Aggregate(lines []EmissionLineResult) Summary {
	var scope1, scope2, scope3 float64
	for _, l := range lines {
		switch l.Scope {
		case 1:
			scope1 += l.TCO2e
		case 2:
			scope2 += l.TCO2e
		case 3:
			scope3 += l.TCO2e
		}
	}
	scope1 = round(scope1, aggregateDP)
	scope2 = round(scope2, aggregateDP)
	scope3 = round(scope3, aggregateDP)

	estimated := 0
	for _, l := range lines {
		if !IsDerived(l.Input) && l.Input.Estimated {
			estimated++
		}
	}

	return Summary{
		TotalTCO2e:       round(scope1+scope2+scope3, aggregateDP),
		Scope1TCO2e:      scope1,
		Scope2TCO2e:      scope2,
		Scope3TCO2e:      scope3,
		DataQualityScore: dataQualityScore(lines),
		EstimatedLines:   estimated,
		UncertaintyPct:   uncertaintyPct(lines),
		Sites:            SiteBreakdowns(lines),
	}
}

// dataQualityScore is the t CO2e share-weighted average of per-line quality
// weights, 0-100. With zero total emissions there is no data to penalize and
// the score defaults to 100.
func dataQualityScore(lines []EmissionLineResult) int {
	total := sumT(lines)
	if total <= 0 {
		return 100
	}
	var weighted float64
	for _, l := range lines {
		weight, ok := tierWeights[l.DataQualityTier]
		if !ok {
			weight = tierWeights[4]
		}
		if l.Input.Estimated {
			weight *= estimatedQualityPenalty
		}
		weighted += weight * (l.TCO2e / total)
	}
	return int(math.Round(weighted))
}

// uncertaintyPct is the t CO2e share-weighted uncertainty percentage, with a
// flat bump per estimated line. Defaults to 0 when total emissions are zero.
func uncertaintyPct(lines []EmissionLineResult) int {
	total := sumT(lines)
	if total <= 0 {
		return 0
	}
	var weighted float64
	for _, l := range lines {
		u, ok := tierUncertainty[l.DataQualityTier]
		if !ok {
			u = tierUncertainty[4]
		}
		if l.Input.Estimated {
			u += estimatedUncertaintyBump
		}
		weighted += u * (l.TCO2e / total)
	}
	return int(math.Round(weighted))
}

// UnassignedSite is the bucket for lines whose input carries no site label.
const UnassignedSite = "Unassigned"

// SiteBreakdowns groups all lines (including derived) by site, accumulating
// running totals with per-step rounding, and returns the buckets sorted by
// descending total. Line counts cover primary lines only.
func SiteBreakdowns(lines []EmissionLineResult) []SiteBreakdown {
	index := make(map[string]int)
	var sites []SiteBreakdown

	for _, l := range lines {
		site := l.Input.Site
		if site == "" {
			site = UnassignedSite
		}
		i, ok := index[site]
		if !ok {
			i = len(sites)
			index[site] = i
			sites = append(sites, SiteBreakdown{Site: site})
		}

		s := &sites[i]
		s.TCO2e = round(s.TCO2e+l.TCO2e, aggregateDP)
		switch l.Scope {
		case 1:
			s.Scope1 = round(s.Scope1+l.TCO2e, aggregateDP)
		case 2:
			s.Scope2 = round(s.Scope2+l.TCO2e, aggregateDP)
		case 3:
			s.Scope3 = round(s.Scope3+l.TCO2e, aggregateDP)
		}
		if !IsDerived(l.Input) {
			s.LineCount++
		}
	}

	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].TCO2e > sites[j].TCO2e
	})
	return sites
}

// IntensityRatios derives the intensity ratios for the given total. Each
// ratio is computed only when its denominator is present and strictly
// positive. Returns nil when no context was supplied.
func IntensityRatios(totalTCO2e float64, in *IntensityMetrics) *IntensityMetrics {
	if in == nil {
		return nil
	}
	out := &IntensityMetrics{
		Employees:   in.Employees,
		RevenueM:    in.RevenueM,
		FloorAreaM2: in.FloorAreaM2,
	}
	if in.Employees > 0 {
		v := round(totalTCO2e/float64(in.Employees), aggregateDP)
		out.PerEmployee = &v
	}
	if in.RevenueM > 0 {
		v := round(totalTCO2e/in.RevenueM, aggregateDP)
		out.PerRevenueM = &v
	}
	if in.FloorAreaM2 > 0 {
		v := round(totalTCO2e/in.FloorAreaM2, aggregateDP)
		out.PerFloorArea = &v
	}
	return out
}

// sumT is the unrounded sum of t CO2e across lines, used as the weighting
// denominator for quality and uncertainty scoring.
func sumT(lines []EmissionLineResult) float64 {
	var total float64
	for _, l := range lines {
		total += l.TCO2e
	}
	return total
}
