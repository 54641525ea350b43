package desktop

import (
	"fmt"

	"casedesk/internal/model"
)

// clipboardSnapshot holds copied items verbatim, with their original ids.
type clipboardSnapshot struct {
	sourceParent string
	roots        []model.Item
	descendants  []model.Item
	cases        map[string]model.Case
	// pasted counts top-level items already pasted from this snapshot.
	pasted int
}

// Copy snapshots the selected items of the current folder and everything below them. It
// returns the number of top-level items copied; an empty selection leaves the clipboard
// unchanged.
func (d *Desktop) Copy() int {
	d.scopeSelection()
	sel := d.Selection()
	if len(sel) == 0 {
		return 0
	}
	snap := &clipboardSnapshot{
		sourceParent: d.CurrentPath(),
		cases:        map[string]model.Case{},
	}
	for _, id := range sel {
		it, _ := d.db.FindItem(id)
		snap.roots = append(snap.roots, it)
	}
	for _, id := range d.db.DescendantsOf(sel...) {
		it, _ := d.db.FindItem(id)
		snap.descendants = append(snap.descendants, it)
	}
	for _, it := range append(append([]model.Item(nil), snap.roots...), snap.descendants...) {
		if !it.Type.IsCase() {
			continue
		}
		if c, ok := d.db.FindCase(it.ID); ok {
			snap.cases[it.ID] = c
		}
	}
	d.clipboard = snap
	d.log.WithField("count", len(snap.roots)).Debug("copied items")
	return len(snap.roots)
}

// HasClipboard reports whether Paste would do anything.
func (d *Desktop) HasClipboard() bool {
	return d.clipboard != nil && len(d.clipboard.roots) > 0
}

// CopiedNames lists the names of the top-level copied items.
func (d *Desktop) CopiedNames() []string {
	if d.clipboard == nil {
		return nil
	}
	out := make([]string, 0, len(d.clipboard.roots))
	for _, it := range d.clipboard.roots {
		out = append(out, it.Name)
	}
	return out
}

// Paste recreates the clipboard contents in the current folder under fresh ids. Top-level
// items cascade from their original positions, continuing past earlier pastes of the same
// snapshot; names gain a " Copy" suffix when pasted
// back into the folder they came from. The selection becomes the new top-level items.
// The store is left untouched if any item cannot be created.
func (d *Desktop) Paste() ([]string, error) {
	if !d.HasClipboard() {
		return nil, nil
	}
	snap := d.clipboard
	parent := d.CurrentPath()
	sameFolder := snap.sourceParent == parent

	total := len(snap.roots) + len(snap.descendants)
	fresh := d.db.NewItemIDs(total)
	remap := make(map[string]string, total)
	i := 0
	for _, it := range snap.roots {
		remap[it.ID] = fresh[i]
		i++
	}
	for _, it := range snap.descendants {
		remap[it.ID] = fresh[i]
		i++
	}

	before := *d.db
	now := d.now()
	rollback := func(err error) ([]string, error) {
		*d.db = before
		d.log.WithError(err).Warn("paste failed")
		return nil, err
	}

	newRoots := make([]string, 0, len(snap.roots))
	for i, it := range snap.roots {
		oldID := it.ID
		it.ID = remap[oldID]
		it.ParentID = parent
		step := float64(CascadeStep * (snap.pasted + i + 1))
		it.Position = d.viewport.Clamp(it.Position.Add(model.Position{X: step, Y: step}))
		it.CreatedAt = now
		if sameFolder {
			it.Name += " Copy"
		}
		if err := d.createCopy(it, snap.cases[oldID]); err != nil {
			return rollback(err)
		}
		newRoots = append(newRoots, it.ID)
	}

	// Descendants are created once their new parent exists; store order does not
	// guarantee parents come first.
	pending := append([]model.Item(nil), snap.descendants...)
	for len(pending) > 0 {
		var rest []model.Item
		for _, it := range pending {
			newParent := remap[it.ParentID]
			if _, ok := d.db.FindItem(newParent); !ok {
				rest = append(rest, it)
				continue
			}
			oldID := it.ID
			it.ID = remap[oldID]
			it.ParentID = newParent
			it.CreatedAt = now
			if err := d.createCopy(it, snap.cases[oldID]); err != nil {
				return rollback(err)
			}
		}
		if len(rest) == len(pending) {
			return rollback(fmt.Errorf("paste: %d items have no parent in the clipboard", len(rest)))
		}
		pending = rest
	}

	snap.pasted += len(newRoots)
	d.selection = newRoots
	d.log.WithField("count", len(newRoots)).WithField("folder", parent).Debug("pasted items")
	return append([]string(nil), newRoots...), nil
}

// createCopy adds a pasted item. Case-folders get a clone of the copied case record, or a
// fresh one if none was captured.
func (d *Desktop) createCopy(it model.Item, c model.Case) error {
	if it.Type.IsCase() && c.ID != "" {
		return d.db.CreateCase(it, c.Clone())
	}
	return d.db.Create(it)
}
