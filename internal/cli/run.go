package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/config"
	imgutil "github.com/jmylchreest/colorsort/internal/image"
	"github.com/jmylchreest/colorsort/internal/pipeline"
	"github.com/jmylchreest/colorsort/internal/security"
)

// analyseInput discovers the images under input and analyses them. Images
// below the output directory are skipped so reruns do not pick up their own
// output. Per-image failures are logged and returned alongside the images
// that succeeded.
func analyseInput(ctx context.Context, input string, s config.Settings, log hclog.Logger, progress io.Writer) ([]analysis.Image, []pipeline.Result, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	paths, err := imgutil.CollectImages(input)
	if err != nil {
		return nil, nil, err
	}
	paths = excludeOutput(paths, s.OutputDir, input)
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", imgutil.ErrNoImages, input)
	}

	log.Info("analysing images", "count", len(paths), "algorithm", s.Algorithm)

	opts := pipeline.Options{
		Workers: s.Workers,
		Logger:  log.Named("analyse"),
	}
	if isTerminal(progress) {
		opts.Progress = func(done, total int, _ pipeline.Result) {
			fmt.Fprintf(progress, "\rAnalysing images: %d/%d", done, total)
			if done == total {
				fmt.Fprintln(progress)
			}
		}
	}

	results := pipeline.Analyze(ctx, paths, s.Analysis(log.Named("analysis")), opts)
	if err := ctx.Err(); err != nil {
		return nil, results, fmt.Errorf("analysis interrupted: %w", err)
	}

	images := pipeline.Succeeded(results)
	if failed := pipeline.Failed(results); len(failed) > 0 {
		log.Warn("some images could not be analysed", "failed", len(failed), "succeeded", len(images))
	}
	if len(images) == 0 {
		return nil, results, fmt.Errorf("none of the %d images could be analysed", len(paths))
	}
	return images, results, nil
}

// excludeOutput drops paths inside outputDir unless the user pointed input
// at the output directory itself.
func excludeOutput(paths []string, outputDir, input string) []string {
	if outputDir == "" || security.Within(input, outputDir) {
		return paths
	}
	kept := paths[:0:0]
	for _, p := range paths {
		if !security.Within(p, outputDir) {
			kept = append(kept, p)
		}
	}
	return kept
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
