package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"github.com/conbuild/conbuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/conbuild/conbuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/conbuild/conbuild/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"github.com/conbuild/conbuild/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"github.com/conbuild/conbuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/conbuild/conbuild/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.ValidatorNodeID,
			cache.NodeID,
			shell.NodeID,
			state.NodeID,
			state.HasherNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	validator, err := graft.Dep[ports.OptionValidator](ctx)
	if err != nil {
		return nil, err
	}
	cacheFactory, err := graft.Dep[ports.CacheFactory](ctx)
	if err != nil {
		return nil, err
	}
	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}
	infoStore, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.OutputHasher](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, validator, cacheFactory, bundler, infoStore, hasher, telemetry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       a,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
