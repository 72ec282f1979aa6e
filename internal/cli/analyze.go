package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsort/internal/analysis"
	"github.com/jmylchreest/colorsort/internal/colour"
)

// analyzeFormat is the --format flag value of the analyze command.
type analyzeFormat string

const (
	formatTable analyzeFormat = "table"
	formatJSON  analyzeFormat = "json"
	formatHex   analyzeFormat = "hex"
)

func parseAnalyzeFormat(s string) (analyzeFormat, error) {
	f := analyzeFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case formatTable, formatJSON, formatHex:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (valid: table, json, hex)", s)
	}
}

var (
	// Analyze command flags
	analyzeOutputFormat = formatTable
	analyzePreview      bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image|directory>",
	Short: "Print the dominant colours of images",
	Long: `Analyse one image, or every image below a directory, and print each
image's dominant colours.

Examples:
  # Dominant colours of every image in a folder
  colorsort analyze ~/Pictures/trip

  # Three hue-histogram colours per image as JSON
  colorsort analyze -a hue_dist -n 3 --format json photo.jpg

  # Hex codes with terminal colour previews
  colorsort analyze --format hex --preview ~/Pictures/trip`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	registerAnalysisFlags(analyzeCmd, &settings)

	format := newEnum(&analyzeOutputFormat, parseAnalyzeFormat, []analyzeFormat{formatTable, formatJSON, formatHex}, "format")
	analyzeCmd.Flags().VarP(format, "format", "f", format.usage("output format"))
	analyzeCmd.Flags().BoolVar(&analyzePreview, "preview", false, "show colour previews (defaults to on when stdout is a terminal)")
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, args []string) error {
	images, _, err := analyseInput(cmd.Context(), args[0], settings, logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	preview := analyzePreview || (!cmd.Flags().Changed("preview") && isTerminal(out))
	return writeAnalysis(out, images, analyzeOutputFormat, preview)
}

// analysisRecord is the JSON form of one analysed image.
type analysisRecord struct {
	Path      string              `json:"path"`
	Name      string              `json:"name"`
	Algorithm analysis.Algorithm  `json:"algorithm"`
	NColors   int                 `json:"n_colors"`
	IsBW      bool                `json:"is_bw"`
	Dominant  []analysis.Dominant `json:"dominant"`
}

func writeAnalysis(w io.Writer, images []analysis.Image, format analyzeFormat, preview bool) error {
	switch format {
	case formatJSON:
		records := make([]analysisRecord, len(images))
		for i, img := range images {
			records[i] = analysisRecord{
				Path:      img.Path(),
				Name:      img.Name(),
				Algorithm: img.Algorithm(),
				NColors:   img.NColors(),
				IsBW:      img.IsBW(),
				Dominant:  img.Dominant(),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case formatHex:
		for _, img := range images {
			parts := make([]string, 0, img.NColors())
			for _, c := range img.DominantRGB(false) {
				if preview {
					parts = append(parts, colour.FormatWithPreview(c, 4))
				} else {
					parts = append(parts, c.Hex())
				}
			}
			fmt.Fprintf(w, "%s: %s\n", img.Name(), strings.Join(parts, " "))
		}
		return nil

	default:
		table := NewTable([]string{"#", "Image", "n", "Dominant", "Name", "HSV", "Share", "B/W"})
		table.SetColumnMaxWidth(1, 40)
		for i, img := range images {
			top := img.Dominant()[0]
			swatch := top.RGB.Hex()
			if preview {
				swatch = colour.FormatWithPreview(top.RGB, 2)
			}
			table.AddRow([]string{
				strconv.Itoa(i + 1),
				img.Name(),
				strconv.Itoa(img.NColors()),
				swatch,
				colour.NearestName(top.RGB),
				img.MostDominantHSV(true).String(),
				fmt.Sprintf("%.0f%%", top.Proportion*100),
				yesNo(img.IsBW()),
			})
		}
		_, err := io.WriteString(w, table.Render())
		return err
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
