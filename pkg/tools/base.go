package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"

	"modelbridge/pkg/logger"
	"modelbridge/pkg/providers"
	"modelbridge/pkg/providers/converter"
)

// baseTool carries what every catalog entry shares.
type baseTool struct {
	name        string
	kind        providers.ToolKind
	description string
	provider    string
	route       providers.Route
	schema      *jsonschema.Schema
	client      *providers.Client
	logger      *logger.Logger
}

func (b *baseTool) Name() string                    { return b.name }
func (b *baseTool) Kind() providers.ToolKind        { return b.kind }
func (b *baseTool) Description() string             { return b.description }
func (b *baseTool) InputSchema() *jsonschema.Schema { return b.schema }

// newRequest starts a provider request from the route defaults.
func (b *baseTool) newRequest() *providers.ProviderRequest {
	return &providers.ProviderRequest{
		Model:           b.route.Model,
		Grounding:       append([]providers.GroundingTool(nil), b.route.Grounding...),
		Temperature:     b.route.Temperature,
		MaxOutputTokens: b.route.MaxOutputTokens,
		DisableThinking: b.route.DisableThinking,
	}
}

func (b *baseTool) call(ctx context.Context, req *providers.ProviderRequest) (*providers.NormalizedResult, error) {
	requestID := RequestIDFromContext(ctx)
	res, err := b.client.Call(ctx, b.kind, req, requestID)
	if err != nil {
		return nil, err
	}
	if res.Strategy == converter.StrategyChatReasoning {
		b.logger.Warn("Answer taken from reasoning_content; content was empty",
			zap.String("tool", b.name),
			zap.String("request_id", requestID),
		)
	}
	return res, nil
}

func userMessage(text string) providers.Message {
	return providers.Message{Role: providers.RoleUser, Content: text}
}
