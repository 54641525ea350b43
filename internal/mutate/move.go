package mutate

import (
	"casedesk/internal/model"
	"casedesk/internal/store"
)

// CheckReparent validates moving ids under targetID without changing anything.
func CheckReparent(db *store.DB, ids []string, targetID string) error {
	for _, id := range ids {
		if _, ok := db.FindItem(id); !ok {
			return NotFoundError{Kind: "item", ID: id}
		}
		if id == targetID {
			return CycleError{ItemID: id, TargetID: targetID}
		}
	}
	if targetID == model.RootID {
		return nil
	}
	target, ok := db.FindItem(targetID)
	if !ok {
		return NotFoundError{Kind: "folder", ID: targetID}
	}
	if !target.Type.IsContainer() {
		return NotContainerError{ID: targetID}
	}
	for _, id := range ids {
		for _, d := range db.DescendantsOf(id) {
			if d == targetID {
				return CycleError{ItemID: id, TargetID: targetID}
			}
		}
	}
	return nil
}

// Reparent moves every id under targetID and resets each to anchor. Nothing changes if
// any move would be invalid.
func Reparent(db *store.DB, ids []string, targetID string, anchor model.Position) error {
	if len(ids) == 0 {
		return nil
	}
	if err := CheckReparent(db, ids, targetID); err != nil {
		return err
	}
	for _, id := range ids {
		if err := db.Update(id, store.Patch{ParentID: &targetID, Position: &anchor}); err != nil {
			return err
		}
	}
	return nil
}

// DeleteItems removes ids with their whole subtrees and returns every removed id.
func DeleteItems(db *store.DB, ids []string) []string {
	if db == nil || len(ids) == 0 {
		return []string{}
	}
	return db.Delete(ids...)
}
