package desktop

import (
	"casedesk/internal/model"
	"casedesk/internal/mutate"
	"casedesk/internal/store"
)

type dragSession struct {
	primary  string
	ids      []string
	offsets  map[string]model.Position
	target   string
	start    model.Position
	collapse bool
}

// DragOutcome describes how a pointer release ended a drag.
type DragOutcome struct {
	// Moved is set when items changed position but stayed in their folder.
	Moved bool
	// Dropped is set when the dragged items were moved into Target.
	Dropped bool
	Target  string
	// Clicked is set when the pressed item ended where it started; it acted as a click.
	Clicked bool
	Err     error
}

// PressItem starts a drag on an item in the current folder. A plain press on an item that
// is already selected drags the whole selection; otherwise the item alone is selected and
// dragged. A modifier press toggles the item and drags the selection only if the item is
// still part of it.
func (d *Desktop) PressItem(id string, p model.Position, modifier bool) bool {
	if d.Mode() != ModeIdle || !d.inCurrentFolder(id) {
		return false
	}
	d.scopeSelection()
	if modifier {
		d.toggle(id)
		if !d.IsSelected(id) {
			return false
		}
	} else if !d.IsSelected(id) {
		d.selection = []string{id}
	}

	s := &dragSession{
		primary:  id,
		ids:      d.Selection(),
		offsets:  map[string]model.Position{},
		collapse: !modifier,
	}
	for _, sid := range s.ids {
		if it, ok := d.db.FindItem(sid); ok {
			s.offsets[sid] = p.Sub(it.Position)
			if sid == id {
				s.start = it.Position
			}
		}
	}
	d.drag = s
	return true
}

// MovePointer feeds a pointer move to the active session. Moves outside a session are
// ignored.
func (d *Desktop) MovePointer(p model.Position) {
	switch {
	case d.drag != nil:
		d.moveDrag(p)
	case d.box != nil:
		d.MoveBox(p)
	}
}

func (d *Desktop) moveDrag(p model.Position) {
	s := d.drag
	for _, id := range s.ids {
		off, ok := s.offsets[id]
		if !ok {
			continue
		}
		it, ok := d.db.FindItem(id)
		if !ok {
			continue
		}
		next := d.viewport.Clamp(p.Sub(off))
		if next == it.Position {
			continue
		}
		if err := d.db.Update(id, store.Patch{Position: &next}); err != nil {
			d.log.WithError(err).WithField("item", id).Warn("drag move failed")
		}
	}
	s.target = d.hitTarget(s)
}

// hitTarget finds the first folder in the current view, other than the dragged items,
// near the primary dragged item.
func (d *Desktop) hitTarget(s *dragSession) string {
	primary, ok := d.db.FindItem(s.primary)
	if !ok {
		return ""
	}
	dragged := map[string]bool{}
	for _, id := range s.ids {
		dragged[id] = true
	}
	for _, it := range d.Items() {
		if dragged[it.ID] || !it.Type.IsContainer() {
			continue
		}
		if !near(it.Position, primary.Position) {
			continue
		}
		if mutate.CheckReparent(d.db, s.ids, it.ID) != nil {
			continue
		}
		return it.ID
	}
	return ""
}

// Release ends the active pointer session.
func (d *Desktop) Release() DragOutcome {
	if d.box != nil {
		d.EndBox()
		return DragOutcome{}
	}
	s := d.drag
	if s == nil {
		return DragOutcome{}
	}
	d.drag = nil
	moved := d.movedSince(s)

	if s.target != "" {
		ids := d.existing(s.ids)
		if err := mutate.Reparent(d.db, ids, s.target, DropAnchor); err != nil {
			d.log.WithError(err).WithField("target", s.target).Warn("drop rejected")
			return DragOutcome{Moved: moved, Err: err}
		}
		d.log.WithField("target", s.target).WithField("count", len(ids)).Debug("dropped items")
		return DragOutcome{Dropped: true, Target: s.target}
	}
	if !moved {
		if s.collapse {
			d.selection = []string{s.primary}
		}
		return DragOutcome{Clicked: true}
	}
	d.log.WithField("count", len(s.ids)).Debug("moved items")
	return DragOutcome{Moved: true}
}

// movedSince reports whether the primary item ended away from where the drag started.
func (d *Desktop) movedSince(s *dragSession) bool {
	it, ok := d.db.FindItem(s.primary)
	return ok && it.Position != s.start
}

// Dragging reports whether a drag session is active.
func (d *Desktop) Dragging() bool { return d.drag != nil }

// DropTarget is the folder currently highlighted as the drop destination.
func (d *Desktop) DropTarget() (string, bool) {
	if d.drag == nil || d.drag.target == "" {
		return "", false
	}
	return d.drag.target, true
}

// DraggedIDs lists the items in the active drag.
func (d *Desktop) DraggedIDs() []string {
	if d.drag == nil {
		return nil
	}
	return append([]string(nil), d.drag.ids...)
}

// ItemAt returns the topmost item of the current folder whose footprint contains p.
func (d *Desktop) ItemAt(p model.Position) (model.Item, bool) {
	items := d.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if IconRect(items[i].Position).Contains(p) {
			return items[i], true
		}
	}
	return model.Item{}, false
}

func (d *Desktop) existing(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := d.db.FindItem(id); ok {
			out = append(out, id)
		}
	}
	return out
}
