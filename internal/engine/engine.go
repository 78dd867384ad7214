package engine

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/secr-engine/internal/factors"
)

// Methodology constants asserted by this engine. These are not configurable;
// they are recorded in every result's metadata block.
const (
	ConsolidationApproach = "operational_control"
	Scope2Method          = "location_based"
)

// Engine is the calculation orchestrator. It holds a read-only factor catalog
// plus injected clock and id-generation hooks, and is safe for concurrent use.
type Engine struct {
	catalog *factors.Catalog
	now     func() time.Time
	newID   func() string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests to pin
// calculation timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides calculation-id generation. Generated ids must
// keep the "calc_" prefix contract exposed to collaborators.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an Engine backed by the given catalog.
func New(catalog *factors.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		now:     time.Now,
		newID:   newCalculationID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// newCalculationID generates a "calc_"-prefixed ULID.
func newCalculationID() string {
	return "calc_" + strings.ToLower(ulid.Make().String())
}

// Calculate runs the full pipeline: expand derived well-to-tank inputs, price
// every primary and derived input, aggregate, detect gaps, and assemble the
// final result.
//
// The computation is atomic: a failure pricing any single line (unknown
// factor, unit mismatch, negative quantity) aborts the whole request and no
// partial result is returned. An empty input list fails with
// ErrNoActivityData.
func (e *Engine) Calculate(req CalculationRequest) (*CalculationResult, error) {
	if len(req.Inputs) == 0 {
		return nil, ErrNoActivityData
	}

	derived := ExpandWTT(req.Inputs)
	all := make([]ActivityInput, 0, len(req.Inputs)+len(derived))
	all = append(all, req.Inputs...)
	all = append(all, derived...)

	lines := make([]EmissionLineResult, 0, len(all))
	for _, input := range all {
		line, err := e.PriceLine(input)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	summary := Aggregate(lines)

	return &CalculationResult{
		ID:                   e.newID(),
		OrganisationName:     req.OrganisationName,
		ReportingPeriodStart: req.ReportingPeriodStart,
		ReportingPeriodEnd:   req.ReportingPeriodEnd,
		CalculatedAt:         e.now().UTC().Format(time.RFC3339),
		FactorVersion:        e.catalog.Version(),
		Lines:                lines,
		Summary:              summary,
		Intensity:            IntensityRatios(summary.TotalTCO2e, req.Intensity),
		Gaps:                 DetectGaps(lines, req.Intensity),
		Metadata: Metadata{
			GHGProtocolConsolidation: ConsolidationApproach,
			Scope2Method:             Scope2Method,
		},
	}, nil
}
