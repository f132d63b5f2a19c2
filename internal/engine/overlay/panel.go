package overlay

// Line is one row of a text panel.
type Line struct {
	Text  string
	Color Color
}

const panelPadding = 8

// DrawLines queues a panel at (x, y) sized to fit lines. It returns the
// panel's size.
func (o *Overlay) DrawLines(x, y float32, lines []Line) (w, h float32) {
	if len(lines) == 0 {
		return 0, 0
	}
	lh := o.LineHeight()
	for _, l := range lines {
		lw, _ := o.MeasureText(l.Text)
		w = max(w, lw)
	}
	w += 2 * panelPadding
	h = float32(len(lines))*lh + 2*panelPadding

	o.DrawPanel(x, y, w, h, ColorPanel, ColorBorder)
	for i, l := range lines {
		o.DrawText(x+panelPadding, y+panelPadding+float32(i)*lh, l.Text, l.Color)
	}
	return w, h
}
