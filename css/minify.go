package css

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cssmin/properties"
)

// MinifyOptions controls Stylesheet.Minify.
type MinifyOptions struct {
	Targets properties.Targets
	// Workers bounds the number of blocks merged at once, 0 means one per
	// CPU.
	Workers int
}

// Minify merges every declaration block of the stylesheet in place and
// applies prefix targets to @keyframes. Blocks are independent and are
// processed concurrently, item order does not change.
func (s *Stylesheet) Minify(ctx context.Context, opts MinifyOptions, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("minify")

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		jobs   []func()
		blocks int
	)
	merge := func(b *properties.DeclarationBlock) {
		blocks++
		jobs = append(jobs, func() { *b = properties.Merge(*b, opts.Targets, log) })
	}
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			merge(&item.Rule.Declarations)
		case item.Group != nil:
			for i := range item.Group.Rules {
				merge(&item.Group.Rules[i].Declarations)
			}
		case item.Descriptor != nil:
			merge(&item.Descriptor.Declarations)
		case item.Keyframes != nil:
			kf := item.Keyframes
			kf.ApplyTargets(opts.Targets)
			blocks += len(kf.Keyframes)
			jobs = append(jobs, func() { kf.Merge(opts.Targets, log) })
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			job()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug("Stylesheet minified", zap.Int("blocks", blocks), zap.Int("workers", workers))
	return nil
}
