package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"modelbridge/pkg/logger"
	"modelbridge/pkg/providers"
)

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id carried by ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Dispatcher routes calls by name and converts every outcome into an Envelope.
// It never returns an error and never panics.
type Dispatcher struct {
	registry *Registry
	provider string
	logger   *logger.Logger
}

// NewDispatcher creates a dispatcher over a catalog.
func NewDispatcher(registry *Registry, client *providers.Client, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		provider: client.Descriptor().DisplayName,
		logger:   log,
	}
}

// Registry returns the catalog the dispatcher serves.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Has reports whether name is in the catalog.
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.registry.Get(name)
	return ok
}

// InvokeJSON decodes raw JSON arguments and invokes the tool.
func (d *Dispatcher) InvokeJSON(ctx context.Context, name string, raw json.RawMessage) Envelope {
	args := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return d.failure(name, &InvalidArgumentError{Field: "arguments", Message: "must be a JSON object"})
		}
	}
	return d.Invoke(ctx, name, args)
}

// Invoke runs one tool call.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (env Envelope) {
	tool, ok := d.registry.Get(name)
	if !ok {
		d.logger.Warn("Unknown tool requested", zap.String("tool", name))
		return d.failure(name, &UnknownToolError{Name: name})
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = WithRequestID(ctx, requestID)
	}
	log := d.logger.With(zap.String("tool", name), zap.String("request_id", requestID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool panicked", zap.Any("panic", r))
			env = d.failure(name, fmt.Errorf("internal error: %v", r))
		}
	}()

	start := time.Now()
	if args == nil {
		args = map[string]any{}
	}

	text, err := tool.Execute(ctx, args)
	if err != nil {
		reason := string(providers.ClassifyError(err).Reason)
		var invalid *InvalidArgumentError
		if errors.As(err, &invalid) {
			reason = "invalid"
		}
		log.Warn("Tool call failed",
			zap.String("reason", reason),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return d.failure(name, err)
	}

	log.Info("Tool call completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(text)),
	)
	return TextEnvelope(text)
}

func (d *Dispatcher) failure(name string, err error) Envelope {
	return ErrorEnvelope(fmt.Sprintf("Error calling %s (%s): %v", d.provider, name, err))
}
