package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/internal/adapters/logger"
	"github.com/conbuild/conbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.bundler"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBundler(log), nil
		},
	})
}
