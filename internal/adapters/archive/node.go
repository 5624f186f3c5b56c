package archive

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/internal/adapters/logger"
	"github.com/conbuild/conbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[*Codec]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Codec, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCodec(log), nil
		},
	})
}
