package electrochem

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"orr-overpotential/internal/config"
	"orr-overpotential/internal/handlers"
	"orr-overpotential/internal/observability"
	"orr-overpotential/internal/overpotential"
	"orr-overpotential/internal/validation"
)

// tracer is the overpotential service's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("electrochem")

// Service serves overpotential computations over HTTP. It holds only
// immutable configuration and is safe for concurrent use.
type Service struct {
	defaults overpotential.Config
	presets  config.PresetSet
}

// NewService returns a Service that falls back to defaults when a request
// names neither a preset nor an explicit convention.
func NewService(defaults overpotential.Config, presets config.PresetSet) *Service {
	return &Service{defaults: defaults, presets: presets}
}

// requestError is a rejected request, mapped to an HTTP status and kind.
type requestError struct {
	status int
	kind   string
	msg    string
	err    error
}

func badRequest(kind, msg string, err error) *requestError {
	return &requestError{status: http.StatusBadRequest, kind: kind, msg: msg, err: err}
}

// domainError maps an engine error to 422 with its error kind.
func domainError(err error) *requestError {
	return &requestError{
		status: http.StatusUnprocessableEntity,
		kind:   overpotential.ErrorKind(err),
		msg:    err.Error(),
		err:    err,
	}
}

// resolve turns a decoded request into an engine configuration and a pathway.
func (s *Service) resolve(req OverpotentialRequest) (overpotential.Pathway, overpotential.Config, *requestError) {
	cfg := s.defaults

	if req.Preset != "" {
		preset, err := s.presets.Lookup(req.Preset)
		if err != nil {
			return overpotential.Pathway{}, cfg, badRequest("unknown_preset", err.Error(), err)
		}
		cfg, err = preset.EngineConfig(s.defaults.Tolerance)
		if err != nil {
			return overpotential.Pathway{}, cfg, domainError(err)
		}
	}
	if req.ReactionType != "" {
		t, err := overpotential.ParseReactionType(req.ReactionType)
		if err != nil {
			return overpotential.Pathway{}, cfg, badRequest("invalid_request", err.Error(), err)
		}
		cfg.ReactionType = t
	}
	if req.EquilibriumPotential != nil {
		cfg.EquilibriumPotential = *req.EquilibriumPotential
	}

	steps := make([]overpotential.PathwayStep, len(req.Steps))
	for i, st := range req.Steps {
		steps[i] = overpotential.PathwayStep{
			ElementaryStep: overpotential.ElementaryStep{Index: i, Electrons: st.Electrons, Label: st.Label},
			DeltaE:         *st.DeltaE,
			Correction:     st.Correction,
		}
	}
	p, err := overpotential.PathwayOf(steps...)
	if err != nil {
		return overpotential.Pathway{}, cfg, domainError(err)
	}
	return p, cfg, nil
}

func decode(r *http.Request, dst any) *requestError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid_request", "invalid request body", err)
	}
	if err := validation.Struct(dst); err != nil {
		return badRequest("invalid_request", err.Error(), err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Handler: overpotential
// ---------------------------------------------------------------------------

// Compute handles POST /overpotential. It opens a span for the computation
// with one child span per elementary step, records metrics, and logs the
// limiting step.
func (s *Service) Compute(w http.ResponseWriter, r *http.Request) {
	const opName = "compute"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "overpotential.compute",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	fail := func(e *requestError) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, e.kind, e.msg, e.err, e.status, w)
	}

	var req OverpotentialRequest
	if e := decode(r, &req); e != nil {
		fail(e)
		return
	}

	p, cfg, e := s.resolve(req)
	if e != nil {
		fail(e)
		return
	}

	span.SetAttributes(
		attribute.String("overpotential.reaction_type", cfg.ReactionType.String()),
		attribute.Float64("overpotential.equilibrium_potential", cfg.EquilibriumPotential),
		attribute.Int("overpotential.steps_count", p.Len()),
		attribute.String("overpotential.preset", req.Preset),
	)

	start := time.Now()
	res, err := overpotential.Compute(p, cfg)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		fail(domainError(err))
		return
	}

	for _, st := range res.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("overpotential.step.%d", st.Index),
			trace.WithAttributes(
				attribute.Int("step.index", st.Index),
				attribute.String("step.label", st.Label),
				attribute.Int("step.electrons", st.Electrons),
				attribute.Float64("step.delta_g_eq", st.DeltaGEq),
				attribute.Bool("step.limiting", st.Index == res.LimitingStepIndex),
			),
		)
		if st.OnsetPotential != nil {
			stepSpan.SetAttributes(attribute.Float64("step.onset_potential", *st.OnsetPotential))
		}
		stepSpan.End()
	}

	attrs := metric.WithAttributes(attribute.String("reaction_type", cfg.ReactionType.String()))
	computeCounter.Add(ctx, 1, attrs)
	computeHistogram.Record(ctx, elapsed, attrs)
	etaHistogram.Record(ctx, res.Eta, attrs)
	limitingPotentialGauge.Record(ctx, res.LimitingPotential, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("eta", res.Eta),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(
		attribute.Float64("overpotential.eta", res.Eta),
		attribute.Float64("overpotential.limiting_potential", res.LimitingPotential),
		attribute.Int("overpotential.limiting_step", res.LimitingStepIndex),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("overpotential computed",
		zap.String("reaction_type", cfg.ReactionType.String()),
		zap.String("preset", req.Preset),
		zap.Int("steps", p.Len()),
		zap.Int("limiting_step", res.LimitingStepIndex),
		zap.String("limiting_label", res.LimitingStepLabel),
		zap.Float64("limiting_potential", res.LimitingPotential),
		zap.Float64("eta", res.Eta),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, OverpotentialResponse{Result: res, Preset: req.Preset})
}

// ---------------------------------------------------------------------------
// Handler: free energy diagram
// ---------------------------------------------------------------------------

// Diagram handles POST /overpotential/diagram: the per-step free energy
// changes and cumulative levels at one electrode potential.
func (s *Service) Diagram(w http.ResponseWriter, r *http.Request) {
	const opName = "diagram"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "overpotential.diagram",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	fail := func(e *requestError) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, e.kind, e.msg, e.err, e.status, w)
	}

	var req DiagramRequest
	if e := decode(r, &req); e != nil {
		fail(e)
		return
	}

	p, cfg, e := s.resolve(req.OverpotentialRequest)
	if e != nil {
		fail(e)
		return
	}
	if err := cfg.Validate(); err != nil {
		fail(domainError(fmt.Errorf("%w: %v", overpotential.ErrInvalidConfig, err)))
		return
	}

	u := *req.Potential
	deltaGs := p.FreeEnergies(u)
	steps := make([]DiagramStep, p.Len())
	downhill := true
	for i, st := range p.Steps() {
		steps[i] = DiagramStep{Index: i, Label: st.Label, Electrons: st.Electrons, DeltaG: deltaGs[i]}
		if st.Electrochemical() && deltaGs[i] > 0 {
			downhill = false
		}
	}

	span.SetAttributes(
		attribute.Float64("overpotential.potential", u),
		attribute.Int("overpotential.steps_count", p.Len()),
		attribute.Bool("overpotential.downhill", downhill),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("free energy diagram computed",
		zap.Float64("potential", u),
		zap.Int("steps", p.Len()),
		zap.Bool("downhill", downhill),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, DiagramResponse{
		ReactionType: cfg.ReactionType,
		Potential:    u,
		Steps:        steps,
		Levels:       p.Diagram(u),
		Downhill:     downhill,
	})
}

// ---------------------------------------------------------------------------
// Handlers: presets
// ---------------------------------------------------------------------------

// ListPresets handles GET /presets.
func (s *Service) ListPresets(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"presets": s.presets.All()})
}

// GetPreset handles GET /presets/{name}.
func (s *Service) GetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.presets.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		handlers.WriteErrorKind(w, http.StatusNotFound, "unknown_preset", err.Error())
		return
	}
	handlers.WriteJSON(w, http.StatusOK, preset)
}
