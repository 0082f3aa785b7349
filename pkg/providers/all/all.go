// Package all registers every family adaptor.
// Import this package to ensure all adaptors are registered.
package all

import (
	// Import adaptors to trigger their init() functions
	_ "modelbridge/pkg/providers/adaptor/chat"
	_ "modelbridge/pkg/providers/adaptor/endpoint"
	_ "modelbridge/pkg/providers/adaptor/gemini"
)
