package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI-coloured block for a colour.
// Width specifies how many characters wide the block should be.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	p := c.RGB8()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, p.R, p.G, p.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewWithText returns a colour block with centred text overlaid.
// The text is black or white depending on the luminance of the block.
func PreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg uint8 = 255
	if Luminance(c) > 0.5 {
		fg = 0
	}

	p := c.RGB8()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, p.R, p.G, p.B, ansiSuffix)
	fgc := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg, fg, fg, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		pad := (width - len(text)) / 2
		display = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	return bg + fgc + display + ansiReset
}

// FormatWithPreview formats a colour as a preview block followed by its hex code.
func FormatWithPreview(c RGB, width int) string {
	return fmt.Sprintf("%s %s", Preview(c, width), c.Hex())
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
func Luminance(c RGB) float64 {
	p := c.RGB8()
	r := gammaCorrect(float64(p.R) / 255.0)
	g := gammaCorrect(float64(p.G) / 255.0)
	b := gammaCorrect(float64(p.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
