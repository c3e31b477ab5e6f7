package providers

// This file centralizes all listing source imports for self-registration.
// To add a new source, just add one import line here.

import (
	// Import all source implementations for side-effect registration
	_ "github.com/agentstation/hackfinder/internal/sources/providers/devevents"
	_ "github.com/agentstation/hackfinder/internal/sources/providers/devpost"
	_ "github.com/agentstation/hackfinder/internal/sources/providers/luma"
	_ "github.com/agentstation/hackfinder/internal/sources/providers/mlh"
)
