package cache

import (
	"context"
	"os"
	"runtime"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/internal/adapters/archive"
	"github.com/conbuild/conbuild/internal/adapters/logger"
	"github.com/conbuild/conbuild/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_factory"

func init() {
	graft.Register(graft.Node[ports.CacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, archive.NodeID},
		Run: func(ctx context.Context) (ports.CacheFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			codec, err := graft.Dep[*archive.Codec](ctx)
			if err != nil {
				return nil, err
			}

			return &Factory{
				Locator: &Locator{
					Platform: runtime.GOOS,
					Getenv:   os.Getenv,
					Logger:   log,
				},
				Packer:   codec,
				Unpacker: codec,
				Logger:   log,
			}, nil
		},
	})
}
