package session

import (
	"context"
	"encoding/json"
	"errors"
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

	"neon-calculator/internal/calculator"
	"neon-calculator/internal/handlers"
	"neon-calculator/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator sessions of one Store over HTTP.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrLimitReached):
		return http.StatusServiceUnavailable
	case errors.Is(err, calculator.ErrUnknownButton):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ---------------------------------------------------------------------------
// Handlers: session lifecycle
// ---------------------------------------------------------------------------

// Create handles POST /sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	s, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create", err.Error(), err, statusFor(err), w)
		return
	}

	activeSessions.Add(ctx, 1)
	span.SetAttributes(attribute.String("session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(s.ID, s.Snapshot()))
}

// Get handles GET /sessions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "session.get")
	defer span.End()

	s, ok := h.lookup(ctx, span, logger, "get", w, r)
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(s.ID, s.Snapshot()))
}

// Delete handles DELETE /sessions/{id}. The session and its history are gone.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "session.delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", err.Error(), err, statusFor(err), w)
		return
	}

	activeSessions.Add(ctx, -1)
	span.SetStatus(codes.Ok, "")

	logger.Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookup(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("session.id", id))

	s, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return nil, false
	}
	return s, true
}

// ---------------------------------------------------------------------------
// Handlers: button presses
// ---------------------------------------------------------------------------

// Press handles POST /sessions/{id}/press
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "session.press")
	defer span.End()

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	button, err := calculator.ParseButton(req.Button)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", err.Error(), err, statusFor(err), w)
		return
	}

	s, ok := h.lookup(ctx, span, logger, "press", w, r)
	if !ok {
		return
	}

	start := time.Now()
	step, state := s.Press(button)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	recordStep(ctx, span, logger, s.ID, step, elapsed)
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, PressResponse{
		Button:  string(step.Button),
		Outcome: string(step.Outcome),
		Session: newSessionResponse(s.ID, state),
	})
}

// Sequence handles POST /sessions/{id}/sequence. It presses every button in
// order, creating a child span per press. The whole body is validated before
// the first press so a bad token leaves the session untouched.
func (h *Handler) Sequence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "session.sequence",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "sequence", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Buttons) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "sequence", "no buttons provided", fmt.Errorf("buttons array is empty"), http.StatusBadRequest, w)
		return
	}

	buttons := make([]calculator.Button, 0, len(req.Buttons))
	for i, text := range req.Buttons {
		b, err := calculator.ParseButton(text)
		if err != nil {
			err = fmt.Errorf("button %d: %w", i, err)
			observability.RecordError(ctx, span, logger, errorCounter, "sequence", err.Error(), err, statusFor(err), w)
			return
		}
		buttons = append(buttons, b)
	}

	s, ok := h.lookup(ctx, span, logger, "sequence", w, r)
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int("sequence.length", len(buttons)))

	steps := make([]StepResult, 0, len(buttons))
	last := time.Now()
	state := s.PressAll(buttons, func(step Step) {
		elapsed := float64(time.Since(last).Microseconds()) / 1000.0
		last = time.Now()

		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("session.sequence.step.%d", len(steps)),
			trace.WithAttributes(attribute.Int("sequence.step.index", len(steps))),
		)
		recordStep(ctx, stepSpan, logger, s.ID, step, elapsed)
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		steps = append(steps, StepResult{
			Button:  string(step.Button),
			Outcome: string(step.Outcome),
			Display: step.Display,
		})
	})

	span.AddEvent("sequence.complete", trace.WithAttributes(
		attribute.String("display", state.Display),
		attribute.Int("history.length", len(state.History)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("button sequence completed",
		zap.String("session_id", s.ID),
		zap.Int("presses", len(buttons)),
		zap.String("display", state.Display),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, SequenceResponse{
		Steps:   steps,
		Session: newSessionResponse(s.ID, state),
	})
}

// recordStep attaches one press to span, metrics and the log.
func recordStep(ctx context.Context, span trace.Span, logger *zap.Logger, sessionID string, step Step, elapsed float64) {
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("calculator.button", string(step.Button)),
		attribute.String("calculator.outcome", string(step.Outcome)),
		attribute.String("calculator.display", step.Display),
	)

	attrs := metric.WithAttributes(
		attribute.String("kind", string(step.Button.Kind())),
		attribute.String("outcome", string(step.Outcome)),
	)
	pressCounter.Add(ctx, 1, attrs)
	pressHistogram.Record(ctx, elapsed, attrs)

	if step.Outcome != calculator.Evaluated {
		return
	}

	opAttrs := metric.WithAttributes(attribute.String("operator", string(step.Operator)))
	evalCounter.Add(ctx, 1, opAttrs)
	if step.Operator == calculator.Divide && step.Display == calculator.Infinity {
		divByZeroCounter.Add(ctx, 1)
	}
	if v, ok := calculator.ParseNumber(step.Display); ok {
		resultGauge.Record(ctx, v, opAttrs)
	}

	span.AddEvent("calculation.complete", trace.WithAttributes(
		attribute.String("entry", step.Entry),
	))

	logger.Info("calculation completed",
		zap.String("session_id", sessionID),
		zap.String("operator", string(step.Operator)),
		zap.String("entry", step.Entry),
		zap.Bool("sentinel", calculator.IsSentinel(step.Display)),
		zap.Float64("duration_ms", elapsed),
	)
}
