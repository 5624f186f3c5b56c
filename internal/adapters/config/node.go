package config

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/internal/adapters/logger"
	"github.com/conbuild/conbuild/internal/core/ports"
)

const (
	NodeID          graft.ID = "adapter.config_loader"
	ValidatorNodeID graft.ID = "adapter.option_validator"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.OptionValidator]{
		ID:        ValidatorNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.OptionValidator, error) {
			return NewValidator(), nil
		},
	})
}
