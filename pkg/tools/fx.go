package tools

import (
	"go.uber.org/fx"
)

// Module provides the tool catalog and dispatcher for fx.
var Module = fx.Module("tools",
	fx.Provide(NewCatalog),
	fx.Provide(NewDispatcher),
)
