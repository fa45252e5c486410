package layout

import "math"

const (
	// DefaultRatio is the share of the viewport the form occupies.
	DefaultRatio = 0.6
	// DefaultMaxWidth caps the form width on very wide viewports.
	DefaultMaxWidth = 1024.0

	minColumns = 20
)

// Params configures the page width calculation.
type Params struct {
	Ratio float64
	Max   float64
}

// DefaultParams returns the standard 60% / 1024 parameters.
func DefaultParams() Params {
	return Params{Ratio: DefaultRatio, Max: DefaultMaxWidth}
}

// Width computes min(Ratio × viewportWidth, Max). Zero values fall back to
// the defaults.
func (p Params) Width(viewportWidth float64) float64 {
	ratio := p.Ratio
	if ratio <= 0 {
		ratio = DefaultRatio
	}
	limit := p.Max
	if limit <= 0 {
		limit = DefaultMaxWidth
	}
	return math.Min(ratio*viewportWidth, limit)
}

// PageWidth computes the layout width with the default parameters.
func PageWidth(viewportWidth float64) float64 {
	return DefaultParams().Width(viewportWidth)
}

// Columns converts a page width into a renderable column count. Narrow
// terminals still get a usable form.
func Columns(pageWidth float64) int {
	c := int(pageWidth)
	if c < minColumns {
		return minColumns
	}
	return c
}

// ContentHeight returns the rows left for the form after the status bar.
func ContentHeight(totalHeight int) int {
	h := totalHeight - statusBarHeight
	if h < 1 {
		return 1
	}
	return h
}

const statusBarHeight = 1
