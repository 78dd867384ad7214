// Package httpapi exposes the calculation engine over a JSON HTTP API. The
// handlers only translate between the wire format and the engine; all numeric
// behavior lives in internal/engine.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/secr-engine/internal/engine"
	"github.com/rshade/secr-engine/internal/factors"
)

// Server wires the engine, factor catalog, and calculation history behind a
// chi router.
type Server struct {
	engine   *engine.Engine
	catalog  *factors.Catalog
	store    *HistoryStore
	logger   zerolog.Logger
	validate *validator.Validate
}

// NewServer creates a Server around an engine and its catalog.
func NewServer(eng *engine.Engine, catalog *factors.Catalog, store *HistoryStore, logger zerolog.Logger) *Server {
	return &Server{
		engine:   eng,
		catalog:  catalog,
		store:    store,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes returns the router mounting all API endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Get("/factors", s.handleFactors)
		r.Get("/calculations", s.handleListCalculations)
		r.Get("/calculations/{id}", s.handleGetCalculation)
	})
	return r
}

// calculateRequest is the wire shape of a calculation request. Field
// validation here mirrors the engine's preconditions so malformed requests
// are rejected before any pricing runs.
type calculateRequest struct {
	OrganisationName     string                   `json:"organisation_name" validate:"required"`
	ReportingPeriodStart string                   `json:"reporting_period_start" validate:"required"`
	ReportingPeriodEnd   string                   `json:"reporting_period_end" validate:"required"`
	Inputs               []activityInput          `json:"inputs" validate:"required,min=1,dive"`
	Intensity            *engine.IntensityMetrics `json:"intensity"`
}

type activityInput struct {
	ID          string  `json:"id" validate:"required"`
	SourceType  string  `json:"source_type" validate:"required"`
	FactorID    string  `json:"factor_id" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Unit        string  `json:"unit" validate:"required"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Site        string  `json:"site"`
	Notes       string  `json:"notes"`
	Estimated   bool    `json:"estimated"`
}

func (r calculateRequest) toEngine() engine.CalculationRequest {
	inputs := make([]engine.ActivityInput, len(r.Inputs))
	for i, in := range r.Inputs {
		inputs[i] = engine.ActivityInput{
			ID:          in.ID,
			SourceType:  in.SourceType,
			FactorID:    in.FactorID,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			PeriodStart: in.PeriodStart,
			PeriodEnd:   in.PeriodEnd,
			Site:        in.Site,
			Notes:       in.Notes,
			Estimated:   in.Estimated,
		}
	}
	return engine.CalculationRequest{
		OrganisationName:     r.OrganisationName,
		ReportingPeriodStart: r.ReportingPeriodStart,
		ReportingPeriodEnd:   r.ReportingPeriodEnd,
		Inputs:               inputs,
		Intensity:            r.Intensity,
	}
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := s.engine.Calculate(req.toEngine())
	if err != nil {
		status := http.StatusInternalServerError
		if isCallerError(err) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		return
	}

	s.store.Put(result)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"meta":    s.catalog.Meta(),
		"factors": s.catalog.All(),
	})
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"calculations": s.store.Recent(recentLimit),
	})
}

func (s *Server) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "calculation not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// isCallerError reports whether err is one of the engine's validation
// failures, which map to 400 rather than 500.
func isCallerError(err error) bool {
	return errors.Is(err, engine.ErrNoActivityData) ||
		errors.Is(err, engine.ErrUnitMismatch) ||
		errors.Is(err, engine.ErrInvalidQuantity) ||
		errors.Is(err, factors.ErrUnknownFactor)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
