// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/conbuild/conbuild/internal/adapters/archive"
	_ "github.com/conbuild/conbuild/internal/adapters/cache"
	_ "github.com/conbuild/conbuild/internal/adapters/config"
	_ "github.com/conbuild/conbuild/internal/adapters/logger"
	_ "github.com/conbuild/conbuild/internal/adapters/shell"
	_ "github.com/conbuild/conbuild/internal/adapters/state"
	_ "github.com/conbuild/conbuild/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "github.com/conbuild/conbuild/internal/app"
)
