package ohmslaw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"electrician-pro/internal/config"
	"electrician-pro/internal/handlers"
	"electrician-pro/internal/observability"
	"electrician-pro/internal/series"
)

// tracer is the solver's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("ohmslaw")

// maxBodyBytes caps request bodies; a 20 component circuit is well under 4 KiB.
const maxBodyBytes = 64 << 10

// Handler serves the series circuit endpoints.
type Handler struct {
	maxComponents int
}

func NewHandler(cfg config.SolverConfig) *Handler {
	return &Handler{maxComponents: cfg.MaxComponents}
}

// Solve handles POST /ohms-law/series/solve
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	const opName = "series.solve"

	ctx, span := h.startSpan(r, opName)
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	circuit, ok := h.decode(ctx, span, logger, w, r, opName)
	if !ok {
		return
	}

	start := time.Now()
	res, err := series.Solve(circuit)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		writeConflict(ctx, span, logger, w, opName, err)
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.Bool("converged", res.Converged),
	)
	solveCounter.Add(ctx, 1, attrs)
	solveHistogram.Record(ctx, elapsed, attrs)
	passesHistogram.Record(ctx, int64(res.Passes), attrs)
	solverPasses.WithLabelValues(strconv.FormatBool(res.Converged)).Observe(float64(res.Passes))

	span.AddEvent("solve.complete", trace.WithAttributes(
		attribute.Int("passes", res.Passes),
		attribute.Bool("converged", res.Converged),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(
		attribute.Int("series.passes", res.Passes),
		attribute.Bool("series.converged", res.Converged),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("series circuit solved",
		zap.Int("components", len(res.Components)),
		zap.Int("passes", res.Passes),
		zap.Bool("converged", res.Converged),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, SolveResponse{
		Components: series.Records(res.Components),
		Totals:     series.Component(res.Summary()).Record(),
		Passes:     res.Passes,
		Converged:  res.Converged,
	})
}

// Validate handles POST /ohms-law/series/validate. It runs the conflict check alone.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	const opName = "series.validate"

	ctx, span := h.startSpan(r, opName)
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	circuit, ok := h.decode(ctx, span, logger, w, r, opName)
	if !ok {
		return
	}

	if err := circuit.Validate(); err != nil {
		writeConflict(ctx, span, logger, w, opName, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

func (h *Handler) startSpan(r *http.Request, opName string) (context.Context, trace.Span) {
	return tracer.Start(r.Context(), "ohmslaw."+opName,
		trace.WithAttributes(
			attribute.String("ohmslaw.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
		),
	)
}

// decode reads and parses the request body. When it returns false an error
// response has already been written.
func (h *Handler) decode(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, r *http.Request, opName string) (series.Circuit, bool) {
	var req SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return series.Circuit{}, false
	}

	if len(req.Components) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no components provided", errors.New("components array is empty"), http.StatusBadRequest, w)
		return series.Circuit{}, false
	}

	if len(req.Components) > h.maxComponents {
		err := fmt.Errorf("%d components exceeds the limit of %d", len(req.Components), h.maxComponents)
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return series.Circuit{}, false
	}

	circuit, err := series.ParseCircuit(req.Components, req.Totals)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return series.Circuit{}, false
	}

	span.SetAttributes(attribute.Int("series.components", len(circuit.Components)))
	return circuit, true
}

// writeConflict reports a current conflict as 409 with every mismatch listed.
func writeConflict(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, opName string, err error) {
	var conflict *series.ConflictError
	if !errors.As(err, &conflict) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "solve failed", err, http.StatusInternalServerError, w)
		return
	}

	observability.RecordFailure(ctx, span, logger, errorCounter, opName, "current conflict", err)
	conflictCounter.Add(ctx, int64(len(conflict.Mismatches)), metric.WithAttributes(attribute.String("operation", opName)))

	resp := ConflictResponse{
		Error:     conflict.Error(),
		Conflicts: make([]Conflict, 0, len(conflict.Mismatches)),
	}
	for _, m := range conflict.Mismatches {
		resp.Conflicts = append(resp.Conflicts, Conflict{
			Component:        m.Index + 1,
			ComponentCurrent: series.Known(m.ComponentCurrent).String(),
			TotalCurrent:     series.Known(m.TotalCurrent).String(),
		})
	}

	handlers.WriteJSON(w, http.StatusConflict, resp)
}
