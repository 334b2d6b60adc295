package assets

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Request is one animation set an entity needs before it can be constructed.
type Request struct {
	ID   string
	Spec Spec
}

// LoadAll loads every request concurrently and returns once all have finished.
// The first failure cancels the remaining loads; no partial result is returned.
func LoadAll(ctx context.Context, loader Loader, reqs ...Request) (map[string]*AnimationSet, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[string]*AnimationSet, len(reqs))
	for _, req := range reqs {
		g.Go(func() error {
			set, err := loader.Load(ctx, req.ID, req.Spec)
			if err != nil {
				return err
			}
			mu.Lock()
			out[req.ID] = set
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
