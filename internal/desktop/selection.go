package desktop

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Click applies a plain or modifier click on an item in the current folder.
func (d *Desktop) Click(id string, modifier bool) {
	if !d.inCurrentFolder(id) {
		return
	}
	if modifier {
		d.scopeSelection()
		d.toggle(id)
		return
	}
	d.selection = []string{id}
}

// ClickCanvas handles a click on empty background.
func (d *Desktop) ClickCanvas(modifier bool) {
	if !modifier {
		d.selection = nil
	}
}

func (d *Desktop) SelectAll() {
	items := d.Items()
	sel := make([]string, 0, len(items))
	for _, it := range items {
		sel = append(sel, it.ID)
	}
	d.selection = sel
}

func (d *Desktop) ClearSelection() { d.selection = nil }

// Selection returns the selected ids in selection order.
func (d *Desktop) Selection() []string {
	return append([]string(nil), d.selection...)
}

func (d *Desktop) IsSelected(id string) bool {
	for _, s := range d.selection {
		if s == id {
			return true
		}
	}
	return false
}

// SelectMatching replaces the selection with the current folder's items whose names
// fuzzy-match query, best match first. A blank query leaves the selection alone.
func (d *Desktop) SelectMatching(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.Selection()
	}
	items := d.Items()
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	matches := fuzzy.Find(query, names)
	sel := make([]string, 0, len(matches))
	for _, m := range matches {
		sel = append(sel, items[m.Index].ID)
	}
	d.selection = sel
	return d.Selection()
}

func (d *Desktop) toggle(id string) {
	for i, s := range d.selection {
		if s == id {
			next := make([]string, 0, len(d.selection)-1)
			next = append(next, d.selection[:i]...)
			d.selection = append(next, d.selection[i+1:]...)
			return
		}
	}
	d.selection = append(append([]string(nil), d.selection...), id)
}

// pruneSelection drops ids that no longer exist.
func (d *Desktop) pruneSelection() {
	if len(d.selection) == 0 {
		return
	}
	next := make([]string, 0, len(d.selection))
	for _, id := range d.selection {
		if _, ok := d.db.FindItem(id); ok {
			next = append(next, id)
		}
	}
	d.selection = next
}

// VisibleSelection returns the selected ids that sit in the current folder. Items dropped
// into a subfolder stay selected but are not visible here.
func (d *Desktop) VisibleSelection() []string {
	out := make([]string, 0, len(d.selection))
	for _, id := range d.selection {
		if d.inCurrentFolder(id) {
			out = append(out, id)
		}
	}
	return out
}

// scopeSelection drops selected ids outside the current folder before the selection is
// extended or acted on, so it never spans two folders.
func (d *Desktop) scopeSelection() { d.selection = d.VisibleSelection() }

func (d *Desktop) inCurrentFolder(id string) bool {
	it, ok := d.db.FindItem(id)
	return ok && it.ParentID == d.CurrentPath()
}
