package wrapper

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/FabricCore/yarn-wrapper-gen/filetree"
	"github.com/FabricCore/yarn-wrapper-gen/index"
	"golang.org/x/sync/errgroup"
)

type RunOptions struct {
	Options

	Source string
	Output string
	// Jobs bounds concurrent generation; zero means one per CPU.
	Jobs   int
	DryRun bool
}

type Result struct {
	Classes int
	Files   []string
}

// Run reads every mapping file below Source, indexes all units and writes
// one wrapper per unit below Output. The index is complete before the first
// wrapper is generated. The first error stops the run.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	start := time.Now()

	tree, err := filetree.Scan(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	x, err := index.FromTree(tree)
	if err != nil {
		return nil, err
	}

	result, err := GenerateAll(ctx, x, opts)
	if err != nil {
		return nil, err
	}
	log.Infof("generated %d wrappers into %s in %s", len(result.Files), opts.Output, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// GenerateAll writes a wrapper for every class in x. Generation fans out over
// the read-only index.
func GenerateAll(ctx context.Context, x *index.Index, opts RunOptions) (*Result, error) {
	gen := NewGenerator(x, opts.Options)
	w := &Writer{Root: opts.Output, DryRun: opts.DryRun}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	classes := x.Classes()
	files := make([]string, len(classes))

	owners := make(map[string]string, len(classes))
	for _, c := range classes {
		rel := gen.OutputPath(c)
		if other, ok := owners[rel]; ok {
			return nil, fmt.Errorf("%s and %s both generate %s", other, c.ObfuscatedName(), rel)
		}
		owners[rel] = c.ObfuscatedName()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, c := range classes {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := gen.Generate(c)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			path, err := w.Write(gen.OutputPath(c), data)
			if err != nil {
				return err
			}
			log.Debugf("wrote %s", path)
			files[i] = path
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Result{Classes: len(classes), Files: files}, nil
}
