package ui

// Base holds the size a component was laid out at. Embed it in models.
type Base struct {
	width, height int
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Size returns the component dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}

func (b Base) Width() int { return b.width }

func (b Base) Height() int { return b.height }

// Inner returns the space left inside a standard panel border.
func (b Base) Inner() (width, height int) {
	return max(b.width-BorderWidth, 0), max(b.height-BorderHeight, 0)
}

// Fits reports whether the component has at least minWidth x minHeight.
func (b Base) Fits(minWidth, minHeight int) bool {
	return b.width >= minWidth && b.height >= minHeight
}
