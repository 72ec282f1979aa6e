package colour

import "math"

// namedColour is a reference colour used to give dominant colours a readable name.
type namedColour struct {
	Name    string
	R, G, B uint8
}

// Reference palette: the basic ANSI names plus a handful of common extras.
var namedColours = []namedColour{
	{Name: "black", R: 0, G: 0, B: 0},
	{Name: "gray", R: 128, G: 128, B: 128},
	{Name: "silver", R: 192, G: 192, B: 192},
	{Name: "white", R: 255, G: 255, B: 255},
	{Name: "red", R: 255, G: 0, B: 0},
	{Name: "maroon", R: 128, G: 0, B: 0},
	{Name: "orange", R: 255, G: 165, B: 0},
	{Name: "brown", R: 165, G: 42, B: 42},
	{Name: "yellow", R: 255, G: 255, B: 0},
	{Name: "olive", R: 128, G: 128, B: 0},
	{Name: "green", R: 0, G: 255, B: 0},
	{Name: "darkgreen", R: 0, G: 100, B: 0},
	{Name: "teal", R: 0, G: 128, B: 128},
	{Name: "cyan", R: 0, G: 255, B: 255},
	{Name: "blue", R: 0, G: 0, B: 255},
	{Name: "navy", R: 0, G: 0, B: 128},
	{Name: "indigo", R: 75, G: 0, B: 130},
	{Name: "violet", R: 238, G: 130, B: 238},
	{Name: "magenta", R: 255, G: 0, B: 255},
	{Name: "pink", R: 255, G: 192, B: 203},
}

// NearestName returns the name of the reference colour closest to c.
func NearestName(c RGB) string {
	p := c.RGB8()
	best := ""
	minDistance := math.MaxFloat64
	for _, nc := range namedColours {
		d := colourDistance(p.R, p.G, p.B, nc.R, nc.G, nc.B)
		if d < minDistance {
			minDistance = d
			best = nc.Name
		}
	}
	return best
}

// colourDistance is a weighted Euclidean distance in RGB space that
// emphasises green, roughly following human sensitivity.
func colourDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(2*dr*dr + 4*dg*dg + 3*db*db)
}
