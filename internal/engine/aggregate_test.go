package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeLine builds a minimal line result for aggregator tests. The aggregator
// is a pure function of the line list, so inputs priced elsewhere are not
// needed here.
func makeLine(site string, scope int, tCO2e float64, tier int, estimated, derived bool) EmissionLineResult {
	input := ActivityInput{
		ID:        "i",
		Site:      site,
		Estimated: estimated,
	}
	if derived {
		input.Notes = WTTNotePrefix + "something"
	}
	return EmissionLineResult{
		Input:           input,
		TCO2e:           tCO2e,
		Scope:           scope,
		DataQualityTier: tier,
	}
}

func TestAggregate_ScopeTotals(t *testing.T) {
	lines := []EmissionLineResult{
		makeLine("", 1, 10.12345, 1, false, false),
		makeLine("", 1, 0.00004, 1, false, false),
		makeLine("", 2, 86.961, 1, false, false),
		makeLine("", 3, 7.686, 2, false, true),
	}

	s := Aggregate(lines)
	assert.InDelta(t, 10.1235, s.Scope1TCO2e, 1e-9) // 10.12349 rounded once at 4dp
	assert.InDelta(t, 86.961, s.Scope2TCO2e, 1e-9)
	assert.InDelta(t, 7.686, s.Scope3TCO2e, 1e-9)
	assert.InDelta(t, 104.7705, s.TotalTCO2e, 1e-9)
}

// TestAggregate_TotalIsSumOfRoundedScopes verifies the top-level identity:
// total equals the 4dp re-rounding of the three already-rounded scope totals.
func TestAggregate_TotalIsSumOfRoundedScopes(t *testing.T) {
	lines := []EmissionLineResult{
		makeLine("", 1, 1.11115, 1, false, false),
		makeLine("", 2, 2.22225, 1, false, false),
		makeLine("", 3, 3.33335, 1, false, false),
	}
	s := Aggregate(lines)
	assert.InDelta(t, round(s.Scope1TCO2e+s.Scope2TCO2e+s.Scope3TCO2e, 4), s.TotalTCO2e, 1e-12)
}

func TestAggregate_ZeroTotalDefaults(t *testing.T) {
	lines := []EmissionLineResult{
		makeLine("", 1, 0, 4, true, false),
		makeLine("", 2, 0, 4, true, false),
	}
	s := Aggregate(lines)
	assert.Zero(t, s.TotalTCO2e)
	assert.Equal(t, 100, s.DataQualityScore, "no emissions means no data to penalize")
	assert.Equal(t, 0, s.UncertaintyPct)
}

func TestDataQualityScore(t *testing.T) {
	t.Run("single tier-1 line", func(t *testing.T) {
		s := Aggregate([]EmissionLineResult{makeLine("", 1, 50, 1, false, false)})
		assert.Equal(t, 100, s.DataQualityScore)
	})

	t.Run("equal shares of tier 1 and tier 4", func(t *testing.T) {
		s := Aggregate([]EmissionLineResult{
			makeLine("", 1, 50, 1, false, false),
			makeLine("", 1, 50, 4, false, false),
		})
		assert.Equal(t, 60, s.DataQualityScore) // (100 + 20) / 2
	})

	t.Run("estimated line is discounted", func(t *testing.T) {
		s := Aggregate([]EmissionLineResult{makeLine("", 1, 50, 1, true, false)})
		assert.Equal(t, 60, s.DataQualityScore) // 100 * 0.6
	})

	t.Run("share weighting follows emissions mass", func(t *testing.T) {
		// 90% of emissions at tier 1, 10% at tier 4: 0.9*100 + 0.1*20 = 92.
		s := Aggregate([]EmissionLineResult{
			makeLine("", 1, 90, 1, false, false),
			makeLine("", 1, 10, 4, false, false),
		})
		assert.Equal(t, 92, s.DataQualityScore)
	})
}

func TestUncertaintyPct(t *testing.T) {
	t.Run("single tier-1 line", func(t *testing.T) {
		s := Aggregate([]EmissionLineResult{makeLine("", 1, 50, 1, false, false)})
		assert.Equal(t, 5, s.UncertaintyPct)
	})

	t.Run("estimated adds flat bump", func(t *testing.T) {
		s := Aggregate([]EmissionLineResult{makeLine("", 1, 50, 1, true, false)})
		assert.Equal(t, 20, s.UncertaintyPct) // 5 + 15
	})

	t.Run("tier mix", func(t *testing.T) {
		// 0.5*10 + 0.5*25 = 17.5, rounds to 18.
		s := Aggregate([]EmissionLineResult{
			makeLine("", 1, 50, 2, false, false),
			makeLine("", 1, 50, 3, false, false),
		})
		assert.Equal(t, 18, s.UncertaintyPct)
	})
}

func TestAggregate_EstimatedLinesCountsPrimaryOnly(t *testing.T) {
	lines := []EmissionLineResult{
		makeLine("", 1, 10, 1, true, false),
		makeLine("", 1, 10, 1, false, false),
		// Derived line mirrors the estimated flag of its source; it must not
		// be counted again.
		makeLine("", 3, 1, 2, true, true),
	}
	s := Aggregate(lines)
	assert.Equal(t, 1, s.EstimatedLines)
}

func TestSiteBreakdowns(t *testing.T) {
	lines := []EmissionLineResult{
		makeLine("Warehouse", 1, 10, 1, false, false),
		makeLine("HQ", 2, 90, 1, false, false),
		makeLine("HQ", 3, 8, 2, false, true),
		makeLine("Warehouse", 1, 5, 1, false, false),
	}

	sites := SiteBreakdowns(lines)
	require.Len(t, sites, 2)

	// Sorted by descending total.
	assert.Equal(t, "HQ", sites[0].Site)
	assert.InDelta(t, 98.0, sites[0].TCO2e, 1e-9)
	assert.InDelta(t, 90.0, sites[0].Scope2, 1e-9)
	assert.InDelta(t, 8.0, sites[0].Scope3, 1e-9)
	assert.Equal(t, 1, sites[0].LineCount, "derived lines are excluded from line counts")

	assert.Equal(t, "Warehouse", sites[1].Site)
	assert.InDelta(t, 15.0, sites[1].TCO2e, 1e-9)
	assert.Equal(t, 2, sites[1].LineCount)
}

func TestSiteBreakdowns_UnassignedBucket(t *testing.T) {
	sites := SiteBreakdowns([]EmissionLineResult{
		makeLine("", 1, 3, 1, false, false),
		makeLine("HQ", 2, 1, 1, false, false),
	})
	require.Len(t, sites, 2)
	assert.Equal(t, UnassignedSite, sites[0].Site)
	assert.InDelta(t, 3.0, sites[0].TCO2e, 1e-9)
}

// TestSiteBreakdowns_RunningTotalRounding pins the per-step rounding policy:
// each accumulation rounds at 4 decimal places, so three additions of
// 0.00005 collapse step by step instead of summing first.
func TestSiteBreakdowns_RunningTotalRounding(t *testing.T) {
	lines := []EmissionLineResult{
		makeLine("HQ", 1, 0.00005, 1, false, false),
		makeLine("HQ", 1, 0.00005, 1, false, false),
	}
	sites := SiteBreakdowns(lines)
	require.Len(t, sites, 1)
	// Step 1: round(0 + 0.00005) = 0.0001. Step 2: round(0.0001 + 0.00005) = 0.0002.
	assert.InDelta(t, 0.0002, sites[0].TCO2e, 1e-12)
}

func TestIntensityRatios(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		assert.Nil(t, IntensityRatios(100, nil))
	})

	t.Run("all denominators present", func(t *testing.T) {
		out := IntensityRatios(100, &IntensityMetrics{Employees: 40, RevenueM: 8, FloorAreaM2: 2500})
		require.NotNil(t, out)
		require.NotNil(t, out.PerEmployee)
		assert.InDelta(t, 2.5, *out.PerEmployee, 1e-9)
		require.NotNil(t, out.PerRevenueM)
		assert.InDelta(t, 12.5, *out.PerRevenueM, 1e-9)
		require.NotNil(t, out.PerFloorArea)
		assert.InDelta(t, 0.04, *out.PerFloorArea, 1e-9)
	})

	t.Run("absent denominators yield no ratios", func(t *testing.T) {
		out := IntensityRatios(100, &IntensityMetrics{Employees: 40})
		require.NotNil(t, out)
		assert.NotNil(t, out.PerEmployee)
		assert.Nil(t, out.PerRevenueM)
		assert.Nil(t, out.PerFloorArea)
	})

	t.Run("non-positive denominators yield no ratios", func(t *testing.T) {
		out := IntensityRatios(100, &IntensityMetrics{Employees: 0, RevenueM: -3})
		require.NotNil(t, out)
		assert.Nil(t, out.PerEmployee)
		assert.Nil(t, out.PerRevenueM)
	})

	t.Run("ratios round at 4 decimal places", func(t *testing.T) {
		out := IntensityRatios(100, &IntensityMetrics{Employees: 3})
		require.NotNil(t, out.PerEmployee)
		assert.InDelta(t, 33.3333, *out.PerEmployee, 1e-12)
	})
}
