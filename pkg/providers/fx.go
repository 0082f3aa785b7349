package providers

import (
	"go.uber.org/fx"

	"modelbridge/pkg/config"
)

// Module provides the descriptor, invoker and client for fx.
var Module = fx.Module("providers",
	fx.Provide(ProvideDescriptor),
	fx.Provide(ProvideInvoker),
	fx.Provide(NewClient),
)

// ProvideDescriptor builds the configured provider profile.
func ProvideDescriptor(cfg *config.Config) (*Descriptor, error) {
	p := cfg.Provider
	return NewDescriptor(p.Profile, p.APIKey, Overrides{
		APIBase:     p.APIBase,
		ChatAPIBase: p.ChatAPIBase,
		Headers:     p.Headers,
		Models: map[ToolKind]string{
			KindAsk:           p.Models.Ask,
			KindAskPro:        p.Models.AskPro,
			KindWebSearch:     p.Models.Search,
			KindWebReader:     p.Models.Reader,
			KindParseDocument: p.Models.Parse,
		},
	})
}

// ProvideInvoker builds the shared transport invoker.
func ProvideInvoker(cfg *config.Config) (*Invoker, error) {
	return NewInvoker(cfg.Provider.Proxy)
}
