package desktop

import (
	"casedesk/internal/model"
	"casedesk/internal/mutate"
)

// OpenResult says what Open did: navigated into a folder, or handed back an item for
// preview.
type OpenResult struct {
	Navigated bool
	Item      model.Item
}

// Open enters a folder or case-folder. Files and notes are returned for preview instead.
func (d *Desktop) Open(id string) (OpenResult, error) {
	it, ok := d.db.FindItem(id)
	if !ok {
		return OpenResult{}, mutate.NotFoundError{Kind: "item", ID: id}
	}
	if !it.Type.IsContainer() {
		return OpenResult{Item: it}, nil
	}
	d.cancelSessions()
	d.currentPath = it.ID
	d.direction = DirectionForward
	d.selection = nil
	d.log.WithField("folder", it.ID).Debug("navigate forward")
	return OpenResult{Navigated: true, Item: it}, nil
}

// Up moves to the parent of the current folder. It reports false at the root.
func (d *Desktop) Up() bool {
	cur := d.CurrentPath()
	if cur == model.RootID {
		return false
	}
	parent := model.RootID
	if it, ok := d.db.FindItem(cur); ok {
		parent = it.ParentID
	}
	d.cancelSessions()
	d.currentPath = parent
	d.direction = DirectionBackward
	d.selection = nil
	d.log.WithField("folder", parent).Debug("navigate backward")
	return true
}

// CurrentPath is the id of the folder being viewed, or model.RootID.
func (d *Desktop) CurrentPath() string {
	if d.currentPath != model.RootID {
		if _, ok := d.db.FindItem(d.currentPath); !ok {
			d.currentPath = model.RootID
		}
	}
	return d.currentPath
}

func (d *Desktop) Direction() Direction { return d.direction }

// CurrentFolder returns the viewed folder item; false at the root.
func (d *Desktop) CurrentFolder() (model.Item, bool) {
	return d.db.FindItem(d.CurrentPath())
}

// Breadcrumb lists the folders from the outermost one down to the current folder.
func (d *Desktop) Breadcrumb() []model.Item {
	cur, ok := d.CurrentFolder()
	if !ok {
		return []model.Item{}
	}
	anc := d.db.AncestorsOf(cur.ID)
	out := make([]model.Item, 0, len(anc)+1)
	for i := len(anc) - 1; i >= 0; i-- {
		out = append(out, anc[i])
	}
	return append(out, cur)
}

// settleAfterDelete moves the view to the nearest surviving folder of trail, the
// breadcrumb captured before the delete.
func (d *Desktop) settleAfterDelete(trail []model.Item) {
	if _, ok := d.db.FindItem(d.currentPath); ok || d.currentPath == model.RootID {
		return
	}
	next := model.RootID
	for i := len(trail) - 1; i >= 0; i-- {
		if _, ok := d.db.FindItem(trail[i].ID); ok {
			next = trail[i].ID
			break
		}
	}
	d.cancelSessions()
	d.currentPath = next
	d.direction = DirectionBackward
	d.selection = nil
	d.log.WithField("folder", next).Debug("current folder removed")
}
