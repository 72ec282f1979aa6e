// colorsort - sort images by their dominant colours
//
// colorsort analyses a collection of images, finds the dominant colours of
// each one and orders the collection by hue, saturation or value. It can
// also render colour panels, a spectrum and a collage of the result.
package main

import (
	"github.com/jmylchreest/colorsort/internal/cli"
)

func main() {
	cli.Execute()
}
