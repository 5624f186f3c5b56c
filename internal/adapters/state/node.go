package state

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/conbuild/conbuild/internal/core/ports"
)

const (
	NodeID       graft.ID = "adapter.build_info_store"
	HasherNodeID graft.ID = "adapter.output_hasher"
)

func init() {
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BuildInfoStore, error) {
			return NewStore(DefaultPath)
		},
	})

	graft.Register(graft.Node[ports.OutputHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.OutputHasher, error) {
			return NewHasher(), nil
		},
	})
}
