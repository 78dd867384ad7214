package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/secr-engine/internal/factors"
)

// fixedTime pins calculation timestamps for deterministic assertions.
var fixedTime = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	catalog, err := factors.NewCatalog()
	require.NoError(t, err)
	return New(catalog,
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "calc_test" }),
	)
}

func electricityInput(quantity float64) ActivityInput {
	return ActivityInput{
		ID:          "input_0",
		SourceType:  "electricity_kwh",
		FactorID:    "electricity_kwh",
		Quantity:    quantity,
		Unit:        "kWh",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-12-31",
	}
}

// TestPriceLine_Electricity checks the anchor scenario: 420,000 kWh of grid
// electricity at 0.20705 kg/kWh yields exactly 86961 kg and 86.961 t CO2e.
func TestPriceLine_Electricity(t *testing.T) {
	eng := newTestEngine(t)

	line, err := eng.PriceLine(electricityInput(420000))
	require.NoError(t, err)

	assert.InDelta(t, 86961.0, line.KgCO2e, 1e-9)
	assert.InDelta(t, 86.961, line.TCO2e, 1e-9)
	assert.Equal(t, 2, line.Scope)
	assert.Equal(t, factors.CategoryPurchasedElectricity, line.Category)
	assert.Equal(t, 1, line.DataQualityTier)
	assert.Equal(t, "DESNZ-2024-v1.0", line.FactorVersion)
}

func TestPriceLine_AuditEntry(t *testing.T) {
	eng := newTestEngine(t)

	line, err := eng.PriceLine(electricityInput(420000))
	require.NoError(t, err)

	audit := line.Audit
	assert.Equal(t, "electricity_kwh", audit.FactorID)
	assert.Equal(t, "DESNZ-2024-v1.0", audit.FactorVersion)
	assert.Equal(t, "UK electricity", audit.SourceTable)
	assert.InDelta(t, 0.20705, audit.KgCO2ePerUnit, 1e-12)
	assert.InDelta(t, 420000.0, audit.Quantity, 0)
	assert.Equal(t, "kWh", audit.Unit)
	assert.Equal(t, "420000 kWh × 0.20705 = 86961 kg CO2e", audit.Formula)
	assert.Equal(t, "2024-07-01T12:00:00Z", audit.CalculatedAt)
}

func TestPriceLine_SixDecimalRounding(t *testing.T) {
	eng := newTestEngine(t)

	input := ActivityInput{
		ID:       "input_0",
		FactorID: "natural_gas_kwh",
		Quantity: 123.4567891,
		Unit:     "kWh",
	}
	line, err := eng.PriceLine(input)
	require.NoError(t, err)

	// 123.4567891 * 0.1829 = 22.58024672...
	assert.InDelta(t, 22.580247, line.KgCO2e, 1e-9)
	assert.InDelta(t, 0.02258, line.TCO2e, 1e-9)
}

func TestPriceLine_ZeroQuantity(t *testing.T) {
	eng := newTestEngine(t)

	line, err := eng.PriceLine(electricityInput(0))
	require.NoError(t, err)
	assert.Zero(t, line.KgCO2e)
	assert.Zero(t, line.TCO2e)
}

func TestPriceLine_Failures(t *testing.T) {
	eng := newTestEngine(t)

	t.Run("unknown factor", func(t *testing.T) {
		input := electricityInput(100)
		input.FactorID = "not_a_factor"
		_, err := eng.PriceLine(input)
		assert.True(t, errors.Is(err, factors.ErrUnknownFactor))
	})

	t.Run("unit mismatch", func(t *testing.T) {
		input := electricityInput(100)
		input.Unit = "litres"
		_, err := eng.PriceLine(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnitMismatch))
		assert.Contains(t, err.Error(), `expected "kWh"`)
		assert.Contains(t, err.Error(), `got "litres"`)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := eng.PriceLine(electricityInput(-1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
		assert.Contains(t, err.Error(), "input_0")
	})

	t.Run("unit checked before quantity", func(t *testing.T) {
		input := electricityInput(-1)
		input.Unit = "litres"
		_, err := eng.PriceLine(input)
		assert.True(t, errors.Is(err, ErrUnitMismatch))
	})
}
