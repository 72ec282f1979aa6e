package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/compression"
	"github.com/jmylchreest/colorsort/internal/config"
	"github.com/jmylchreest/colorsort/internal/pipeline"
	"github.com/jmylchreest/colorsort/internal/sorter"
	"github.com/jmylchreest/colorsort/internal/visual"
)

// Output subdirectories below --output-dir.
const (
	sortedDir   = "sorted"
	dominantDir = "dominant_colors"
	spectrumDir = "spectrums"
	collageDir  = "collages"
	archiveDir  = "archives"

	timestampLayout = "20060102150405"
)

// sortCmd represents the sort command
var sortCmd = &cobra.Command{
	Use:   "sort <image|directory>",
	Short: "Sort images by colour and render colour graphics",
	Long: `Analyse every image below a directory, order the collection by colour and
write the requested outputs.

Colour images are ordered by hue and come first. Black and white images follow,
ordered from dark to light. --anchor rotates the colour sequence so that the
named image starts it.

Outputs are written below --output-dir:
  sorted/<timestamp>/           hard links (or copies) named by sorted position
  dominant_colors/<timestamp>/  one colour panel per image
  spectrums/                    one bar per image, in sorted order
  collages/                     the sorted images tiled into a grid
  archives/                     a .tar.xz bundle of this run (--archive)

Examples:
  # Sort a folder and save the ordered copies
  colorsort sort --save-sorted ~/Pictures/trip

  # Start the sequence at a given image and render a spectrum of all colours
  colorsort sort --anchor IMG_0042.jpg --spectrum --spectrum-all-colors ~/Pictures/trip

  # Panels with remapped images, using five clusters per image
  colorsort sort -n 5 --dominant-colors --remapped ~/Pictures/trip`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	registerAnalysisFlags(sortCmd, &settings)
	registerSortFlags(sortCmd, &settings)
}

// runSort executes the sort command.
func runSort(cmd *cobra.Command, args []string) error {
	s := settings
	if s.SkipSort && s.SaveSorted {
		logger.Warn("--save-sorted has no effect with --skip-sort")
		s.SaveSorted = false
	}
	if !s.WantsOutput() && !s.Summary {
		logger.Warn("no outputs requested; see --help for --save-sorted, --dominant-colors, --spectrum and --collage")
	}

	run := &sortRun{
		settings:  s,
		log:       logger.With("run", uuid.NewString()),
		out:       cmd.OutOrStdout(),
		timestamp: time.Now().Format(timestampLayout),
	}
	return run.execute(cmd.Context(), args[0], cmd.ErrOrStderr())
}

// sortRun carries the state of one sort invocation.
type sortRun struct {
	settings  config.Settings
	log       hclog.Logger
	out       io.Writer
	timestamp string

	// written lists every file this run produced.
	written []string
}

func (r *sortRun) execute(ctx context.Context, input string, progress io.Writer) error {
	s := r.settings

	images, results, err := analyseInput(ctx, input, s, r.log, progress)
	if err != nil {
		return err
	}

	if !s.SkipSort {
		images, err = r.sort(images)
		if err != nil {
			return err
		}
	}
	if len(images) == 0 {
		r.log.Warn("no images left to render after excluding black and white images")
	}

	steps := []struct {
		enabled bool
		run     func([]analysis.Image) error
	}{
		{s.SaveSorted, r.saveSorted},
		{s.DominantColours, r.saveDominantColours},
		{s.Spectrum, r.saveSpectrum},
		{s.Collage, r.saveCollage},
	}
	for _, step := range steps {
		if !step.enabled || len(images) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted: %w", err)
		}
		if err := step.run(images); err != nil {
			return err
		}
	}

	if s.Archive && len(r.written) > 0 {
		if err := r.archive(); err != nil {
			return err
		}
	}

	if s.Summary {
		r.printSummary(images, pipeline.Failed(results))
	}
	return nil
}

func (r *sortRun) sort(images []analysis.Image) ([]analysis.Image, error) {
	s := r.settings
	log := r.log.Named("sort")

	var (
		sorted []analysis.Image
		err    error
	)
	if s.SortMethod == sorter.MethodHue && s.ExcludeBW {
		sorted, _ = sorter.ByHue(images, s.Reverse, s.Anchor, log)
	} else {
		sorted, err = sorter.Sort(images, s.SortMethod, s.Reverse, s.Anchor, log)
		if err != nil {
			return nil, err
		}
		if s.ExcludeBW {
			sorted, _ = sorter.Partition(sorted)
		}
	}

	log.Info("sorting complete", "method", s.SortMethod, "images", len(sorted))
	return sorted, nil
}

func (r *sortRun) dir(parts ...string) string {
	return filepath.Join(append([]string{r.settings.OutputDir}, parts...)...)
}

func (r *sortRun) saveSorted(images []analysis.Image) error {
	dest := r.dir(sortedDir, r.timestamp)
	for i, img := range images {
		path := filepath.Join(dest, img.GenerateFilename(i, "sorted"))
		if err := visual.LinkOrCopy(img.Path(), path); err != nil {
			return fmt.Errorf("failed to save sorted image: %w", err)
		}
		r.written = append(r.written, path)
	}
	r.log.Info("saved sorted images", "dir", dest)
	return nil
}

func (r *sortRun) saveDominantColours(images []analysis.Image) error {
	dest := r.dir(dominantDir, r.timestamp)
	opts := r.settings.Panel()
	log := r.log.Named("panel")
	for i, img := range images {
		path := filepath.Join(dest, img.GenerateFilename(i, "dc"))
		if err := r.save(visual.DominantColourPanel(img, opts, log), path); err != nil {
			return err
		}
	}
	r.log.Info("saved dominant colour panels", "dir", dest)
	return nil
}

func (r *sortRun) saveSpectrum(images []analysis.Image) error {
	s := r.settings
	base := r.dir(spectrumDir, r.timestamp+"_spectrum")

	if err := r.save(visual.Spectrum(images, s.SpectrumAllColours, s.SpectrumHeight), base+".jpg"); err != nil {
		return err
	}

	if s.SpectrumSVG {
		path := base + ".svg"
		f, err := os.Create(path) // #nosec G304 -- output path chosen by the user
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		visual.SpectrumSVG(f, images, s.SpectrumAllColours, s.SpectrumHeight)
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		r.written = append(r.written, path)
	}

	r.log.Info("saved spectrum", "path", base+".jpg")
	return nil
}

func (r *sortRun) saveCollage(images []analysis.Image) error {
	tiles := make([]image.Image, len(images))
	for i, img := range images {
		tiles[i] = img.Raster()
	}
	path := r.dir(collageDir, r.timestamp+"_collage.jpg")
	if err := r.save(visual.Collage(tiles, r.settings.CollageColumns, r.settings.CollageSpacing), path); err != nil {
		return err
	}
	r.log.Info("saved collage", "path", path)
	return nil
}

func (r *sortRun) save(img image.Image, path string) error {
	if err := visual.Save(img, path); err != nil {
		return err
	}
	r.written = append(r.written, path)
	return nil
}

// archive bundles every file written by this run. Entries keep their paths
// relative to the output directory.
func (r *sortRun) archive() error {
	staging, err := os.MkdirTemp("", "colorsort-archive-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	for _, path := range r.written {
		rel, err := filepath.Rel(r.settings.OutputDir, path)
		if err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
		if err := visual.LinkOrCopy(path, filepath.Join(staging, rel)); err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
	}

	dest := r.dir(archiveDir, r.timestamp+".tar.xz")
	if err := compression.WriteTarXz(staging, dest); err != nil {
		return err
	}
	r.log.Info("saved archive", "path", dest, "files", len(r.written))
	return nil
}

func (r *sortRun) printSummary(images []analysis.Image, failed []pipeline.Result) {
	fmt.Fprintln(r.out, "\nAnalysed image summary:")
	for i, img := range images {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, img.Summary())
	}
	if len(failed) > 0 {
		fmt.Fprintln(r.out, "\nFailed images:")
		for _, f := range failed {
			fmt.Fprintf(r.out, "- %s: %v\n", f.Path, f.Err)
		}
	}
}
