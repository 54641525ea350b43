package desktop

import (
	"testing"

	"casedesk/internal/model"
	"casedesk/internal/store"
)

func TestPaste_SameFolderAddsCopySuffix(t *testing.T) {
	d := newTestDesktop(t,
		item("x", model.RootID, model.ItemTypeNote, 100, 100),
		item("y", model.RootID, model.ItemTypeFile, 300, 100),
	)
	d.Click("x", false)
	d.Click("y", true)
	if n := d.Copy(); n != 2 {
		t.Fatalf("expected 2 copied, got %d", n)
	}

	ids, err := d.Paste()
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct ids, got %v", ids)
	}
	for _, id := range ids {
		if id == "x" || id == "y" {
			t.Fatalf("paste reused an original id: %v", ids)
		}
	}
	x2 := mustItem(t, d, ids[0])
	y2 := mustItem(t, d, ids[1])
	if x2.Name != "x Copy" || y2.Name != "y Copy" {
		t.Fatalf("unexpected names %q %q", x2.Name, y2.Name)
	}
	if x2.Position != (model.Position{X: 120, Y: 120}) || y2.Position != (model.Position{X: 340, Y: 140}) {
		t.Fatalf("unexpected cascade positions %#v %#v", x2.Position, y2.Position)
	}
	if !sameIDs(d.Selection(), ids) {
		t.Fatalf("expected selection to be the pasted ids, got %v", d.Selection())
	}
}

func TestPaste_OtherFolderKeepsNames(t *testing.T) {
	d := newTestDesktop(t,
		item("x", model.RootID, model.ItemTypeNote, 100, 100),
		item("dest", model.RootID, model.ItemTypeFolder, 300, 100),
	)
	d.Click("x", false)
	d.Copy()
	if _, err := d.Open("dest"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	ids, err := d.Paste()
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected one pasted item, got %v", ids)
	}
	got := mustItem(t, d, ids[0])
	if got.Name != "x" || got.ParentID != "dest" {
		t.Fatalf("expected original name under dest, got %#v", got)
	}
}

func TestPaste_RemapsSubtreeAndClonesCases(t *testing.T) {
	d := newTestDesktop(t,
		item("case", model.RootID, model.ItemTypeSmartFolder, 100, 100),
		item("doc", model.RootID, model.ItemTypeFile, 400, 400),
		item("sub", "case", model.ItemTypeFolder, 50, 50),
	)
	// doc now sits before its parent in store order.
	if err := d.DB().Update("doc", store.Patch{ParentID: store.Ptr("sub")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	score := 70
	narrative := "Suspect left early."
	if err := d.DB().UpdateCase("case", store.CasePatch{Scenario: &narrative, ConfidenceScore: &score}); err != nil {
		t.Fatalf("UpdateCase: %v", err)
	}
	if _, err := d.Rename("sub", "renamed"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	d.Click("case", false)
	d.Copy()
	before := len(d.DB().Items)
	ids, err := d.Paste()
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := len(d.DB().Items) - before; got != 3 {
		t.Fatalf("expected 3 new items, got %d", got)
	}
	newCase := ids[0]
	c, ok := d.Case(newCase)
	if !ok || c.Scenario != narrative || c.ConfidenceScore != 70 || c.ID != newCase {
		t.Fatalf("expected cloned case record, got %#v %v", c, ok)
	}
	subs := d.DB().ChildrenOf(newCase)
	if len(subs) != 1 || subs[0].ID == "sub" || subs[0].Name != "renamed" {
		t.Fatalf("expected remapped sub folder, got %#v", subs)
	}
	docs := d.DB().ChildrenOf(subs[0].ID)
	if len(docs) != 1 || docs[0].ID == "doc" {
		t.Fatalf("expected remapped doc, got %#v", docs)
	}

	d.Delete(newCase)
	if _, ok := d.Case("case"); !ok {
		t.Fatalf("deleting the copy must not remove the original case")
	}
}

func TestPaste_EmptyClipboardIsNoop(t *testing.T) {
	d := newTestDesktop(t, item("x", model.RootID, model.ItemTypeNote, 100, 100))
	ids, err := d.Paste()
	if err != nil || ids != nil {
		t.Fatalf("expected no-op, got %v %v", ids, err)
	}
	if d.Copy() != 0 || d.HasClipboard() {
		t.Fatalf("expected empty selection to leave clipboard empty")
	}
}

func TestPaste_ClampsCascade(t *testing.T) {
	d := newTestDesktop(t, item("x", model.RootID, model.ItemTypeNote, 910, 710))
	d.Click("x", false)
	d.Copy()
	ids, err := d.Paste()
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := mustItem(t, d, ids[0]).Position; got != (model.Position{X: 920, Y: 720}) {
		t.Fatalf("expected clamped paste position, got %#v", got)
	}
	if names := d.CopiedNames(); len(names) != 1 || names[0] != "x" {
		t.Fatalf("unexpected copied names %v", names)
	}
}

func TestCopy_IsSnapshot(t *testing.T) {
	d := newTestDesktop(t, item("x", model.RootID, model.ItemTypeNote, 100, 100))
	d.Click("x", false)
	d.Copy()
	if _, err := d.Rename("x", "changed"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	d.Delete("x")
	ids, err := d.Paste()
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := mustItem(t, d, ids[0]); got.Name != "x Copy" {
		t.Fatalf("expected snapshot name, got %q", got.Name)
	}
}

func TestPaste_RepeatedPastesKeepCascading(t *testing.T) {
	d := newTestDesktop(t, item("x", model.RootID, model.ItemTypeNote, 100, 100))
	d.Click("x", false)
	d.Copy()

	first, err := d.Paste()
	if err != nil {
		t.Fatalf("first Paste: %v", err)
	}
	second, err := d.Paste()
	if err != nil {
		t.Fatalf("second Paste: %v", err)
	}
	if p := mustItem(t, d, first[0]).Position; p != (model.Position{X: 120, Y: 120}) {
		t.Fatalf("unexpected first paste position %#v", p)
	}
	if p := mustItem(t, d, second[0]).Position; p != (model.Position{X: 140, Y: 140}) {
		t.Fatalf("expected second paste to step past the first, got %#v", p)
	}

	d.Click("x", false)
	d.Copy()
	third, err := d.Paste()
	if err != nil {
		t.Fatalf("Paste after recopy: %v", err)
	}
	if p := mustItem(t, d, third[0]).Position; p != (model.Position{X: 120, Y: 120}) {
		t.Fatalf("expected a fresh copy to restart the cascade, got %#v", p)
	}
}
