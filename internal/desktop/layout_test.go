package desktop

import (
	"testing"
	"time"

	"casedesk/internal/model"
)

func TestColumns(t *testing.T) {
	if got := Columns(1000); got != 7 {
		t.Fatalf("expected 7 columns, got %d", got)
	}
	if got := Columns(100); got != 1 {
		t.Fatalf("expected at least one column, got %d", got)
	}
}

func TestArrange_TidyRowMajorByColumnCount(t *testing.T) {
	d := newTestDesktop(t,
		item("c", model.RootID, model.ItemTypeNote, 400, 105),
		item("a", model.RootID, model.ItemTypeNote, 10, 95),
		item("e", model.RootID, model.ItemTypeNote, 50, 400),
		item("b", model.RootID, model.ItemTypeNote, 200, 100),
		item("d", model.RootID, model.ItemTypeNote, 700, 100),
	)
	d.SetViewport(Viewport{Width: 300, Height: 800})

	ids, err := d.Arrange(OrderTidy)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if !sameIDs(ids, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("unexpected tidy order %v", ids)
	}
	// (300-50)/120 = 2 columns.
	want := map[string]model.Position{
		"a": {X: 50, Y: 50}, "b": {X: 170, Y: 50},
		"c": {X: 50, Y: 170}, "d": {X: 170, Y: 170},
		"e": {X: 50, Y: 290},
	}
	for id, pos := range want {
		if got := mustItem(t, d, id).Position; got != pos {
			t.Fatalf("%s: expected %#v, got %#v", id, pos, got)
		}
	}
}

func TestArrange_WideViewportSingleRow(t *testing.T) {
	d := newTestDesktop(t,
		item("a", model.RootID, model.ItemTypeNote, 10, 10),
		item("b", model.RootID, model.ItemTypeNote, 20, 10),
		item("c", model.RootID, model.ItemTypeNote, 30, 10),
	)
	if _, err := d.Arrange(OrderTidy); err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	for i, id := range []string{"a", "b", "c"} {
		if got := mustItem(t, d, id).Position; got != GridPosition(i, 7) || got.Y != 50 {
			t.Fatalf("%s: unexpected position %#v", id, got)
		}
	}
}

func TestArrange_NameAndDate(t *testing.T) {
	d := newTestDesktop(t,
		model.Item{ID: "1", Name: "beta", Type: model.ItemTypeNote, CreatedAt: testNow.Add(-2 * time.Hour)},
		model.Item{ID: "2", Name: "Alpha", Type: model.ItemTypeNote, CreatedAt: testNow},
		model.Item{ID: "3", Name: "gamma", Type: model.ItemTypeNote, CreatedAt: testNow.Add(-time.Hour)},
	)
	ids, err := d.Arrange(OrderName)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if !sameIDs(ids, []string{"2", "1", "3"}) {
		t.Fatalf("unexpected name order %v", ids)
	}
	ids, err = d.Arrange(OrderDate)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if !sameIDs(ids, []string{"2", "3", "1"}) {
		t.Fatalf("unexpected date order %v", ids)
	}
}

func TestArrange_LeavesOtherFoldersAlone(t *testing.T) {
	d := newTestDesktop(t,
		item("f", model.RootID, model.ItemTypeFolder, 400, 400),
		item("inner", "f", model.ItemTypeNote, 333, 333),
	)
	if _, err := d.Arrange(OrderName); err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if got := mustItem(t, d, "inner").Position; got != (model.Position{X: 333, Y: 333}) {
		t.Fatalf("expected inner untouched, got %#v", got)
	}
}

func TestParseOrder(t *testing.T) {
	if o, err := ParseOrder(" Tidy "); err != nil || o != OrderTidy {
		t.Fatalf("expected tidy, got %v %v", o, err)
	}
	if _, err := ParseOrder("size"); err == nil {
		t.Fatalf("expected error for unknown order")
	}
}
