// Package pipeline drives one documentation extraction run: resolve the
// working set, parse and extract every file, and assemble the ordered
// model handed to the renderer.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/agentic-research/bzldoc/api"
	"github.com/agentic-research/bzldoc/internal/aggregate"
	"github.com/agentic-research/bzldoc/internal/ctxlog"
	"github.com/agentic-research/bzldoc/internal/extract"
	"github.com/agentic-research/bzldoc/internal/syntax"
)

// Options configures one run.
type Options struct {
	// Root is the library node being documented.
	Root *aggregate.Node
	// Env holds the builtin names the extractors recognize.
	Env extract.Environment
	// OutputExt is the extension of rendered pages ("md" or "html"),
	// used to derive default output names.
	OutputExt string
	// Workers bounds the per-file extraction fan-out. Zero means one
	// worker per CPU.
	Workers int
}

// Run executes the pipeline. Any fatal error (cycle, unreadable file,
// output name collision) aborts the whole run; per-file extraction
// anomalies degrade into the model instead.
func Run(ctx context.Context, opts Options) ([]api.FileDoc, error) {
	logger := ctxlog.FromContext(ctx)

	files, renames, err := aggregate.Resolve(opts.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved working set", "files", len(files), "renames", len(renames))

	names, err := aggregate.OutputNames(files, renames, opts.OutputExt)
	if err != nil {
		return nil, err
	}

	// Files have no data dependency on each other, so extraction fans
	// out; results land in an index-addressed slice to keep the
	// traversal order of the working set.
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	docs := make([]*api.FileDoc, len(files))
	errs := make([]error, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, file string) {
			defer wg.Done()
			defer func() { <-sem }()
			parsed, err := syntax.ParseFile(ctx, file)
			if err != nil {
				errs[i] = err
				return
			}
			docs[i] = extract.File(opts.Env, parsed)
		}(i, file)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", files[i], err)
		}
	}

	out := make([]api.FileDoc, 0, len(docs))
	for _, doc := range docs {
		doc.OutputName = names[doc.Path]
		logger.Debug("extracted file", "path", doc.Path, "rules", len(doc.Rules), "macros", len(doc.Macros))
		out = append(out, *doc)
	}
	return out, nil
}
