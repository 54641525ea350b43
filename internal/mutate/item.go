package mutate

import (
	"strings"
	"time"

	"casedesk/internal/model"
	"casedesk/internal/store"
)

// DefaultName is the initial display name of a freshly created item.
func DefaultName(typ model.ItemType) string {
	switch typ {
	case model.ItemTypeNote:
		return "New Note"
	case model.ItemTypeSmartFolder:
		return "New Smart Case"
	case model.ItemTypeFolder:
		return "New Folder"
	case model.ItemTypeFile:
		return "New File"
	default:
		return "New Item"
	}
}

// CreateItem adds a new folder, case-folder or note under parentID. Case-folders cannot be
// created anywhere inside another case.
func CreateItem(db *store.DB, typ model.ItemType, parentID string, pos model.Position, now time.Time) (model.Item, error) {
	if parentID != model.RootID {
		p, ok := db.FindItem(parentID)
		if !ok {
			return model.Item{}, NotFoundError{Kind: "folder", ID: parentID}
		}
		if !p.Type.IsContainer() {
			return model.Item{}, NotContainerError{ID: parentID}
		}
	}
	if typ.IsCase() {
		if c, ok := db.EnclosingCase(parentID); ok {
			return model.Item{}, NestedCaseError{CaseID: c.ID}
		}
	}

	it := model.Item{
		ID:             db.NewItemID(),
		ParentID:       parentID,
		Name:           DefaultName(typ),
		Type:           typ,
		Position:       pos,
		CreatedAt:      now,
		AnalysisStatus: model.AnalysisCompleted,
	}
	if typ == model.ItemTypeNote {
		it.Color = model.RandomNoteColor()
	}
	if err := db.Create(it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Rename sets a new display name. Blank names are ignored without error.
func Rename(db *store.DB, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	it, ok := db.FindItem(id)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: id}
	}
	if it.Name == name {
		return false, nil
	}
	if err := db.Update(id, store.Patch{Name: &name}); err != nil {
		return false, err
	}
	return true, nil
}

// SetContent stores edited note/text content written back by the preview.
func SetContent(db *store.DB, id, content string) (bool, error) {
	it, ok := db.FindItem(id)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: id}
	}
	if !it.IsEditable() {
		return false, NotEditableError{ID: id}
	}
	if it.Content == content {
		return false, nil
	}
	if err := db.Update(id, store.Patch{Content: &content}); err != nil {
		return false, err
	}
	return true, nil
}
