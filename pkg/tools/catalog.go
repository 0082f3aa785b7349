package tools

import (
	"fmt"

	"modelbridge/pkg/logger"
	"modelbridge/pkg/providers"
)

// NewCatalog builds the five tools for the client's provider profile.
// Names, descriptions and schemas are fixed for the lifetime of the process.
func NewCatalog(client *providers.Client, log *logger.Logger) (*Registry, error) {
	desc := client.Descriptor()
	registry := NewRegistry()

	for _, kind := range providers.Kinds {
		route, ok := desc.Route(kind)
		if !ok {
			return nil, fmt.Errorf("provider profile %s has no route for %s", desc.Name, kind)
		}

		base := baseTool{
			name:        desc.ToolName(kind),
			kind:        kind,
			description: desc.Descriptions[kind],
			provider:    desc.DisplayName,
			route:       route,
			client:      client,
			logger:      log,
		}

		var tool Tool
		switch kind {
		case providers.KindAsk, providers.KindAskPro:
			tool = NewAskTool(base)
		case providers.KindWebSearch:
			tool = NewWebSearchTool(base)
		case providers.KindWebReader:
			tool = NewWebReaderTool(base)
		case providers.KindParseDocument:
			if route.Family != providers.FamilyChat || !route.Multimodal {
				return nil, fmt.Errorf("provider profile %s: %s needs a multimodal chat route", desc.Name, kind)
			}
			tool = NewParseDocumentTool(base)
		default:
			return nil, fmt.Errorf("unsupported tool kind %s", kind)
		}

		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
