package docconv

// PageSize represents paper dimensions in centimeters.
type PageSize struct {
	Width  float64 // Width in centimeters.
	Height float64 // Height in centimeters.
}

// Standard paper sizes.
var (
	A3     = PageSize{Width: 29.7, Height: 42.0}
	A4     = PageSize{Width: 21.0, Height: 29.7}
	A5     = PageSize{Width: 14.8, Height: 21.0}
	Letter = PageSize{Width: 21.59, Height: 27.94}
	Legal  = PageSize{Width: 21.59, Height: 35.56}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// Margin represents page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig controls the generated PDF pages.
//
// A nil PageConfig or zero-value fields use the defaults: A4 paper,
// portrait orientation, 2 cm margins, 10 pt text.
type PageConfig struct {
	// Size specifies the paper size. Defaults to A4.
	Size PageSize

	// Orientation specifies portrait or landscape. Defaults to Portrait.
	Orientation Orientation

	// Margin specifies page margins in centimeters. Defaults to 2 cm on all sides.
	Margin Margin

	// FontSize is the size of laid-out text in points. Defaults to 10.
	FontSize float64

	// Scale of the rendering when a [ChromeRenderer] is used. Must be
	// between 0.1 and 2.0. Defaults to 1.0.
	Scale float64

	// PrintBackground enables background graphics for a [ChromeRenderer].
	PrintBackground bool
}

// DefaultPageConfig returns a PageConfig with the default values.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            A4,
		Orientation:     Portrait,
		Margin:          UniformMargin(2.0),
		FontSize:        10,
		Scale:           1.0,
		PrintBackground: true,
	}
}

// resolved returns a PageConfig with all zero values replaced by defaults.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	if r.FontSize <= 0 {
		r.FontSize = d.FontSize
	}
	if r.Scale <= 0 {
		r.Scale = d.Scale
	}
	return r
}

// Monospace metrics of the layout font (Courier), in em.
const (
	glyphAdvance = 0.6
	lineLeading  = 1.2
)

func cmToInches(cm float64) float64 {
	return cm / 2.54
}

func cmToPoints(cm float64) float64 {
	return cmToInches(cm) * 72
}

// paperPoints returns the paper width and height in points,
// accounting for orientation.
func (p *PageConfig) paperPoints() (width, height float64) {
	r := p.resolved()
	w := cmToPoints(r.Size.Width)
	h := cmToPoints(r.Size.Height)
	if r.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// marginInches returns margins converted to inches.
func (p *PageConfig) marginInches() (top, right, bottom, left float64) {
	r := p.resolved()
	return cmToInches(r.Margin.Top),
		cmToInches(r.Margin.Right),
		cmToInches(r.Margin.Bottom),
		cmToInches(r.Margin.Left)
}

// layout derives how many monospace columns and lines fit on one page.
// Both are at least 1.
func (p *PageConfig) layout() LayoutConfig {
	r := p.resolved()
	w, h := p.paperPoints()
	usableW := w - cmToPoints(r.Margin.Left) - cmToPoints(r.Margin.Right)
	usableH := h - cmToPoints(r.Margin.Top) - cmToPoints(r.Margin.Bottom)

	cols := int(usableW / (r.FontSize * glyphAdvance))
	lines := int(usableH / (r.FontSize * lineLeading))
	return LayoutConfig{Columns: max(cols, 1), LinesPerPage: max(lines, 1)}
}
