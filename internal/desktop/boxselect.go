package desktop

import "casedesk/internal/model"

type boxSession struct {
	start   model.Position
	current model.Position
}

// BeginBox starts a rubber-band selection from a press on empty canvas. Without a
// modifier the selection is cleared first; with one it survives until the first move.
func (d *Desktop) BeginBox(p model.Position, modifier bool) bool {
	if d.Mode() != ModeIdle {
		return false
	}
	d.ClickCanvas(modifier)
	d.box = &boxSession{start: p, current: p}
	return true
}

// MoveBox stretches the rectangle to p and replaces the selection with every item in the
// current folder whose footprint overlaps it.
func (d *Desktop) MoveBox(p model.Position) {
	if d.box == nil {
		return
	}
	d.box.current = p
	rect := RectFromPoints(d.box.start, d.box.current)
	sel := []string{}
	for _, it := range d.Items() {
		if rect.Overlaps(IconRect(it.Position)) {
			sel = append(sel, it.ID)
		}
	}
	d.selection = sel
}

func (d *Desktop) EndBox() {
	d.box = nil
}

// BoxRect returns the live rectangle while a box session is active.
func (d *Desktop) BoxRect() (Rect, bool) {
	if d.box == nil {
		return Rect{}, false
	}
	return RectFromPoints(d.box.start, d.box.current), true
}
