package mutate

import (
	"errors"
	"testing"
	"time"

	"casedesk/internal/model"
	"casedesk/internal/store"
)

func newDB(t *testing.T) *store.DB {
	t.Helper()
	db := store.New()
	items := []model.Item{
		{ID: "outer", Name: "Outer", Type: model.ItemTypeFolder},
		{ID: "inner", ParentID: "outer", Name: "Inner", Type: model.ItemTypeFolder},
		{ID: "case", Name: "Case", Type: model.ItemTypeSmartFolder},
		{ID: "sub", ParentID: "case", Name: "Sub", Type: model.ItemTypeFolder},
		{ID: "doc", Name: "doc.pdf", Type: model.ItemTypeFile, MimeType: "application/pdf"},
		{ID: "txt", Name: "readme.md", Type: model.ItemTypeFile, MimeType: "text/markdown"},
	}
	for _, it := range items {
		if err := db.Create(it); err != nil {
			t.Fatalf("create %s: %v", it.ID, err)
		}
	}
	return db
}

func TestCreateItem_Defaults(t *testing.T) {
	db := newDB(t)
	now := time.Now().UTC()

	note, err := CreateItem(db, model.ItemTypeNote, "outer", model.Position{X: 10, Y: 20}, now)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.Name != "New Note" || note.Color == "" || note.ParentID != "outer" {
		t.Fatalf("unexpected note: %#v", note)
	}

	c, err := CreateItem(db, model.ItemTypeSmartFolder, model.RootID, model.Position{}, now)
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	rec, ok := db.FindCase(c.ID)
	if !ok {
		t.Fatalf("expected case record")
	}
	if rec.Scenario != store.DefaultCaseScenario || rec.ConfidenceScore != 0 {
		t.Fatalf("unexpected case record: %#v", rec)
	}
}

func TestCreateItem_RejectsNestedCase(t *testing.T) {
	db := newDB(t)
	_, err := CreateItem(db, model.ItemTypeSmartFolder, "sub", model.Position{}, time.Now())
	var nested NestedCaseError
	if !errors.As(err, &nested) {
		t.Fatalf("expected NestedCaseError, got %v", err)
	}
	if nested.CaseID != "case" {
		t.Fatalf("expected enclosing case id, got %q", nested.CaseID)
	}

	// Plain folders inside a case are fine.
	if _, err := CreateItem(db, model.ItemTypeFolder, "sub", model.Position{}, time.Now()); err != nil {
		t.Fatalf("create folder in case: %v", err)
	}
}

func TestCreateItem_RejectsFileParent(t *testing.T) {
	db := newDB(t)
	_, err := CreateItem(db, model.ItemTypeNote, "doc", model.Position{}, time.Now())
	var nc NotContainerError
	if !errors.As(err, &nc) {
		t.Fatalf("expected NotContainerError, got %v", err)
	}
}

func TestRename(t *testing.T) {
	db := newDB(t)

	changed, err := Rename(db, "doc", "   ")
	if err != nil || changed {
		t.Fatalf("blank rename should be ignored; changed=%v err=%v", changed, err)
	}
	it, _ := db.FindItem("doc")
	if it.Name != "doc.pdf" {
		t.Fatalf("name changed on blank rename: %q", it.Name)
	}

	changed, err = Rename(db, "doc", "  contract.pdf ")
	if err != nil || !changed {
		t.Fatalf("rename: changed=%v err=%v", changed, err)
	}
	it, _ = db.FindItem("doc")
	if it.Name != "contract.pdf" {
		t.Fatalf("expected trimmed name, got %q", it.Name)
	}

	if _, err := Rename(db, "missing", "x"); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestSetContent(t *testing.T) {
	db := newDB(t)
	if _, err := SetContent(db, "doc", "x"); !errors.As(err, new(NotEditableError)) {
		t.Fatalf("expected NotEditableError for pdf, got %v", err)
	}
	changed, err := SetContent(db, "txt", "# Title")
	if err != nil || !changed {
		t.Fatalf("set content: changed=%v err=%v", changed, err)
	}
	it, _ := db.FindItem("txt")
	if it.Content != "# Title" {
		t.Fatalf("content not stored")
	}
}

func TestReparent(t *testing.T) {
	db := newDB(t)
	anchor := model.Position{X: 50, Y: 50}

	if err := Reparent(db, []string{"doc", "txt"}, "inner", anchor); err != nil {
		t.Fatalf("reparent: %v", err)
	}
	for _, id := range []string{"doc", "txt"} {
		it, _ := db.FindItem(id)
		if it.ParentID != "inner" || it.Position != anchor {
			t.Fatalf("unexpected %s after move: %#v", id, it)
		}
	}
}

func TestReparent_RejectsCycles(t *testing.T) {
	db := newDB(t)

	err := Reparent(db, []string{"outer"}, "inner", model.Position{})
	var ce CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if ce.ItemID != "outer" || ce.TargetID != "inner" {
		t.Fatalf("unexpected cycle error: %#v", ce)
	}
	it, _ := db.FindItem("outer")
	if it.ParentID != model.RootID {
		t.Fatalf("failed move must not change anything")
	}

	if err := Reparent(db, []string{"outer"}, "outer", model.Position{}); !errors.As(err, &ce) {
		t.Fatalf("expected CycleError for self move, got %v", err)
	}
	if err := Reparent(db, []string{"inner"}, "doc", model.Position{}); !errors.As(err, new(NotContainerError)) {
		t.Fatalf("expected NotContainerError, got %v", err)
	}
}

func TestDeleteItems(t *testing.T) {
	db := newDB(t)
	removed := DeleteItems(db, []string{"case", "missing"})
	if len(removed) != 2 {
		t.Fatalf("expected case and sub removed, got %v", removed)
	}
	if _, ok := db.FindCase("case"); ok {
		t.Fatalf("case record should be gone")
	}
}
