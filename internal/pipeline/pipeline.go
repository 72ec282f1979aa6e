// Package pipeline analyses a batch of images concurrently.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/colorsort/internal/analysis"
)

// AnalyzeFunc analyses one image. It is analysis.New unless overridden.
type AnalyzeFunc func(path string, cfg analysis.Config) (analysis.Image, error)

// Options controls a batch run.
type Options struct {
	// Workers bounds the number of images analysed at once. Zero means runtime.NumCPU().
	Workers int

	// Progress is called after each image finishes. Calls are serialised.
	Progress func(done, total int, r Result)

	Logger  hclog.Logger
	Analyze AnalyzeFunc
}

// Result is the outcome for one input path.
type Result struct {
	Index int
	Path  string
	Image analysis.Image
	Err   error
}

// Analyze runs cfg over every path. Results are returned in input order and
// one failing image never stops the others. Once ctx is cancelled no further
// images are started and the remaining results carry ctx.Err().
func Analyze(ctx context.Context, paths []string, cfg analysis.Config, opts Options) []Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	analyze := opts.Analyze
	if analyze == nil {
		analyze = analysis.New
	}
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if cfg.Logger == nil {
		cfg.Logger = log
	}

	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i] = Result{Index: i, Path: p}
	}

	var (
		mu   sync.Mutex
		done int
	)
	finish := func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(paths), r)
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(paths); j++ {
				results[j].Err = err
			}
			break
		}

		g.Go(func() error {
			r := results[i]
			if err := ctx.Err(); err != nil {
				r.Err = err
			} else {
				r.Image, r.Err = analyze(p, cfg)
			}
			if r.Err != nil {
				log.Warn("failed to analyse image", "path", p, "error", r.Err)
			} else {
				log.Debug("analysed image", "path", p, "n", r.Image.NColors())
			}
			results[i] = r
			finish(r)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Succeeded returns the analysed images in input order.
func Succeeded(results []Result) []analysis.Image {
	var out []analysis.Image
	for _, r := range results {
		if r.Err == nil && r.Image != nil {
			out = append(out, r.Image)
		}
	}
	return out
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
