package desktop

import (
	"errors"
	"strings"
	"testing"

	"casedesk/internal/bridge"
	"casedesk/internal/model"
	"casedesk/internal/mutate"
)

func TestUpload_StateMachine(t *testing.T) {
	d := newTestDesktop(t)
	items, err := d.AddUploads([]bridge.Upload{
		{Name: "a.txt", DeclaredMIME: "text/plain", Data: []byte("alpha")},
		{Name: "b.txt", DeclaredMIME: "text/plain", Data: []byte("beta")},
	})
	if err != nil {
		t.Fatalf("AddUploads: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Position != (model.Position{X: 50, Y: 50}) || items[1].Position != (model.Position{X: 70, Y: 70}) {
		t.Fatalf("unexpected cascade %#v %#v", items[0].Position, items[1].Position)
	}
	a := items[0]
	if a.AnalysisStatus != model.AnalysisPending || a.Content != "alpha" || a.Type != model.ItemTypeFile {
		t.Fatalf("unexpected upload %#v", a)
	}

	req, ok := d.BeginAnalysis(a.ID)
	if !ok || req.Item.AnalysisStatus != model.AnalysisAnalyzing || req.Context != "General" {
		t.Fatalf("unexpected request %#v %v", req, ok)
	}
	if got := mustItem(t, d, a.ID).AnalysisStatus; got != model.AnalysisAnalyzing {
		t.Fatalf("expected ANALYZING, got %s", got)
	}
	if _, ok := d.BeginAnalysis(a.ID); ok {
		t.Fatalf("expected second begin to be refused")
	}

	if !d.ApplyAnalysis(bridge.AnalysisResult{ItemID: a.ID, Summary: "Relevant."}) {
		t.Fatalf("expected result applied")
	}
	got := mustItem(t, d, a.ID)
	if got.AnalysisStatus != model.AnalysisCompleted || got.AISummary != "Relevant." {
		t.Fatalf("unexpected final item %#v", got)
	}
	if d.ApplyAnalysis(bridge.AnalysisResult{ItemID: a.ID, Summary: "late", Failed: true}) {
		t.Fatalf("expected terminal item to ignore further results")
	}

	b := items[1]
	if _, ok := d.BeginAnalysis(b.ID); !ok {
		t.Fatalf("expected analysis to start for b")
	}
	d.ApplyAnalysis(bridge.AnalysisResult{ItemID: b.ID, Summary: bridge.AnalysisFailedText, Failed: true})
	if got := mustItem(t, d, b.ID).AnalysisStatus; got != model.AnalysisFailed {
		t.Fatalf("expected FAILED, got %s", got)
	}
}

func TestUpload_DeletedMidAnalysisIsNoop(t *testing.T) {
	d := newTestDesktop(t)
	items, err := d.AddUploads([]bridge.Upload{{Name: "a.txt", DeclaredMIME: "text/plain", Data: []byte("x")}})
	if err != nil {
		t.Fatalf("AddUploads: %v", err)
	}
	reqs := d.BeginPendingAnalyses([]string{items[0].ID})
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	d.Delete(items[0].ID)
	before := len(d.DB().Items)
	if d.ApplyAnalysis(bridge.AnalysisResult{ItemID: items[0].ID, Summary: "late"}) {
		t.Fatalf("expected no-op for deleted item")
	}
	if len(d.DB().Items) != before {
		t.Fatalf("store changed on a dropped result")
	}
}

func TestBeginAnalysis_ContextNamesEnclosingCase(t *testing.T) {
	d := newTestDesktop(t,
		model.Item{ID: "case", Name: "Heist", Type: model.ItemTypeSmartFolder},
		model.Item{ID: "fin", ParentID: "case", Name: "Financials", Type: model.ItemTypeFolder},
	)
	if _, err := d.Open("case"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := d.Open("fin"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	items, err := d.AddUploads([]bridge.Upload{{Name: "ledger.csv", Data: []byte("a,b\n1,2\n")}})
	if err != nil {
		t.Fatalf("AddUploads: %v", err)
	}
	req, ok := d.BeginAnalysis(items[0].ID)
	if !ok || req.Context != "Case: Heist, Category: Financials" {
		t.Fatalf("unexpected context %q", req.Context)
	}
}

func TestNewItem_SelectsAndGuardsNestedCases(t *testing.T) {
	d := newTestDesktop(t)
	c, err := d.NewItem(model.ItemTypeSmartFolder, model.Position{X: 50, Y: 50})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if c.Name != "New Smart Case" || !sameIDs(d.Selection(), []string{c.ID}) {
		t.Fatalf("unexpected new case %#v sel=%v", c, d.Selection())
	}
	if _, ok := d.Case(c.ID); !ok {
		t.Fatalf("expected case record for new case-folder")
	}
	if _, err := d.Open(c.ID); err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = d.NewItem(model.ItemTypeSmartFolder, model.Position{X: 50, Y: 50})
	var nested mutate.NestedCaseError
	if !errors.As(err, &nested) || nested.CaseID != c.ID {
		t.Fatalf("expected NestedCaseError, got %v", err)
	}
	n, err := d.NewItem(model.ItemTypeNote, model.Position{X: 5000, Y: 5000})
	if err != nil {
		t.Fatalf("NewItem note: %v", err)
	}
	if n.ParentID != c.ID || n.Position != (model.Position{X: 920, Y: 720}) || n.Color == "" {
		t.Fatalf("unexpected note %#v", n)
	}
}

func TestRenameAndSaveContent(t *testing.T) {
	d := newTestDesktop(t,
		model.Item{ID: "n", Name: "Note", Type: model.ItemTypeNote},
		model.Item{ID: "f", Name: "Folder", Type: model.ItemTypeFolder},
	)
	if changed, err := d.Rename("n", "   "); err != nil || changed {
		t.Fatalf("expected blank rename ignored, got %v %v", changed, err)
	}
	if changed, err := d.Rename("n", "Clues"); err != nil || !changed {
		t.Fatalf("expected rename, got %v %v", changed, err)
	}
	if changed, err := d.SaveContent("n", "the butler"); err != nil || !changed {
		t.Fatalf("expected save, got %v %v", changed, err)
	}
	if _, err := d.SaveContent("f", "x"); err == nil {
		t.Fatalf("expected folders to reject content")
	}
	if got := mustItem(t, d, "n"); got.Name != "Clues" || got.Content != "the butler" {
		t.Fatalf("unexpected note %#v", got)
	}
}

func TestDeleteSelection_CascadesAndDropsCase(t *testing.T) {
	d := newTestDesktop(t,
		model.Item{ID: "case", Name: "Case", Type: model.ItemTypeSmartFolder},
		model.Item{ID: "inner", ParentID: "case", Name: "Inner", Type: model.ItemTypeFolder},
		model.Item{ID: "doc", ParentID: "inner", Name: "Doc", Type: model.ItemTypeFile},
		model.Item{ID: "keep", Name: "Keep", Type: model.ItemTypeNote},
	)
	d.Click("case", false)
	removed := d.DeleteSelection()
	if len(removed) != 3 {
		t.Fatalf("expected cascade of 3, got %v", removed)
	}
	if _, ok := d.Case("case"); ok {
		t.Fatalf("expected case record removed")
	}
	if _, ok := d.Item("keep"); !ok || len(d.Selection()) != 0 {
		t.Fatalf("unexpected state after delete, sel=%v", d.Selection())
	}
	if d.ApplyScenario("case", "late", 40) {
		t.Fatalf("expected scenario for deleted case dropped")
	}
}

func TestAskAndScenario(t *testing.T) {
	d := newTestDesktop(t,
		model.Item{ID: "case", Name: "Case", Type: model.ItemTypeSmartFolder},
		model.Item{ID: "note", ParentID: "case", Name: "N", Type: model.ItemTypeNote},
		model.Item{ID: "sub", ParentID: "case", Name: "Sub", Type: model.ItemTypeFolder},
		model.Item{ID: "deep", ParentID: "sub", Name: "D", Type: model.ItemTypeFile},
	)
	ev := d.CaseEvidence("case")
	if len(ev) != 2 {
		t.Fatalf("expected note and deep file, got %#v", ev)
	}

	msg, history, ok := d.Ask("case", "who did it?")
	if !ok || len(history) != 0 || msg.Role != model.ChatRoleUser || msg.ID == "" {
		t.Fatalf("unexpected ask result %#v %#v %v", msg, history, ok)
	}
	d.AppendChat("case", NewChatMessage(model.ChatRoleModel, "the butler", testNow))
	_, history, _ = d.Ask("case", "why?")
	if len(history) != 2 || !strings.Contains(history[1].Text, "butler") {
		t.Fatalf("unexpected history %#v", history)
	}

	if !d.ApplyScenario("case", "A theory.", 140) {
		t.Fatalf("expected scenario applied")
	}
	c, _ := d.Case("case")
	if c.Scenario != "A theory." || c.ConfidenceScore != 100 || len(c.ChatHistory) != 3 {
		t.Fatalf("unexpected case %#v", c)
	}
}

func TestUpload_FailureStillSelectsCreatedItems(t *testing.T) {
	d := newTestDesktop(t,
		model.Item{ID: "doc", Name: "Doc", Type: model.ItemTypeFile},
		model.Item{ID: "keep", Name: "Keep", Type: model.ItemTypeNote},
	)
	d.Click("keep", false)
	// A file cannot hold children, so every create below it fails.
	d.currentPath = "doc"

	items, err := d.AddUploads([]bridge.Upload{
		{Name: "a.txt", DeclaredMIME: "text/plain", Data: []byte("alpha")},
	})
	if err == nil {
		t.Fatalf("expected upload into a file to fail")
	}
	if len(items) != 0 {
		t.Fatalf("expected no items created, got %d", len(items))
	}
	if len(d.Selection()) != 0 {
		t.Fatalf("expected selection to be the created set, got %v", d.Selection())
	}
	if kids := d.Items(); len(kids) != 0 {
		t.Fatalf("expected nothing stored under doc, got %d", len(kids))
	}
}
