package desktop

import (
	"casedesk/internal/model"
	"casedesk/internal/mutate"
)

// NewItem creates a folder, case-folder or note in the current folder at p and selects it.
func (d *Desktop) NewItem(typ model.ItemType, p model.Position) (model.Item, error) {
	it, err := mutate.CreateItem(d.db, typ, d.CurrentPath(), d.viewport.Clamp(p), d.now())
	if err != nil {
		return model.Item{}, err
	}
	d.selection = []string{it.ID}
	d.log.WithField("item", it.ID).WithField("type", string(typ)).Debug("created item")
	return it, nil
}

func (d *Desktop) Rename(id, name string) (bool, error) {
	changed, err := mutate.Rename(d.db, id, name)
	if changed {
		d.log.WithField("item", id).Debug("renamed item")
	}
	return changed, err
}

// SaveContent writes edited note or text content back from the preview.
func (d *Desktop) SaveContent(id, content string) (bool, error) {
	changed, err := mutate.SetContent(d.db, id, content)
	if changed {
		d.log.WithField("item", id).Debug("saved content")
	}
	return changed, err
}

// Delete removes ids and their subtrees. Selection and sessions that referenced removed
// items are cleaned up, and the view falls back to the nearest surviving folder.
func (d *Desktop) Delete(ids ...string) []string {
	trail := d.Breadcrumb()
	removed := mutate.DeleteItems(d.db, ids)
	if len(removed) == 0 {
		return removed
	}
	d.pruneSelection()
	if d.drag != nil {
		for _, id := range removed {
			if id == d.drag.primary {
				d.drag = nil
				break
			}
		}
	}
	d.settleAfterDelete(trail)
	d.log.WithField("count", len(removed)).Debug("deleted items")
	return removed
}

// DeleteSelection deletes the selected items of the current folder.
func (d *Desktop) DeleteSelection() []string {
	d.scopeSelection()
	return d.Delete(d.Selection()...)
}
