package store

import (
	"errors"
	"fmt"
	"strings"

	"casedesk/internal/model"
)

// DefaultCaseScenario is the narrative of a case record created without one.
const DefaultCaseScenario = "Case initialized. Waiting for evidence..."

var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateID   = errors.New("duplicate item id")
	ErrInvalidType   = errors.New("invalid item type")
	ErrInvalidParent = errors.New("parent is not a folder")
	ErrCycle         = errors.New("parent chain would loop")
)

// DB is the single arena holding every desktop item and the case registry.
//
// Mutations never write through to a slice or map handed out earlier: Items and Cases
// are replaced with fresh collections, so callers can hold on to db.Items as a snapshot.
type DB struct {
	Items []model.Item          `json:"items" yaml:"items"`
	Cases map[string]model.Case `json:"cases" yaml:"cases"`
}

func New() *DB {
	return &DB{Items: []model.Item{}, Cases: map[string]model.Case{}}
}

// Patch is a partial item update. Nil fields are left untouched.
type Patch struct {
	Name           *string
	ParentID       *string
	Position       *model.Position
	Content        *string
	AnalysisStatus *model.AnalysisStatus
	AISummary      *string
}

type CasePatch struct {
	Scenario         *string
	ConfidenceScore  *int
	PendingQuestions []string
}

func Ptr[T any](v T) *T { return &v }

func (db *DB) FindItem(id string) (model.Item, bool) {
	if db == nil || id == "" {
		return model.Item{}, false
	}
	for _, it := range db.Items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (db *DB) FindCase(id string) (model.Case, bool) {
	if db == nil || db.Cases == nil {
		return model.Case{}, false
	}
	c, ok := db.Cases[id]
	if !ok {
		return model.Case{}, false
	}
	return c.Clone(), true
}

// ChildrenOf returns the direct children of parentID in store order.
func (db *DB) ChildrenOf(parentID string) []model.Item {
	out := []model.Item{}
	if db == nil {
		return out
	}
	for _, it := range db.Items {
		if it.ParentID == parentID {
			out = append(out, it)
		}
	}
	return out
}

// DescendantsOf returns the ids of every transitive descendant of the seed ids, in store
// order. The set grows by adding any item whose parent is already in it until a pass adds
// nothing. Seeds are never part of the result.
func (db *DB) DescendantsOf(ids ...string) []string {
	if db == nil || len(ids) == 0 {
		return []string{}
	}
	seeds := map[string]bool{}
	set := map[string]bool{}
	for _, id := range ids {
		seeds[id] = true
		set[id] = true
	}
	for {
		grew := false
		for _, it := range db.Items {
			if set[it.ID] || it.ParentID == model.RootID {
				continue
			}
			if set[it.ParentID] {
				set[it.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	out := []string{}
	for _, it := range db.Items {
		if set[it.ID] && !seeds[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

// AncestorsOf returns the chain of folders above id, nearest first. A visited set bounds
// the walk even if the parent graph is broken.
func (db *DB) AncestorsOf(id string) []model.Item {
	out := []model.Item{}
	it, ok := db.FindItem(id)
	if !ok {
		return out
	}
	seen := map[string]bool{it.ID: true}
	cur := it.ParentID
	for cur != model.RootID && !seen[cur] {
		seen[cur] = true
		p, ok := db.FindItem(cur)
		if !ok {
			break
		}
		out = append(out, p)
		cur = p.ParentID
	}
	return out
}

// EnclosingCase returns the nearest SMART_FOLDER at or above folderID.
func (db *DB) EnclosingCase(folderID string) (model.Item, bool) {
	if folderID == model.RootID {
		return model.Item{}, false
	}
	it, ok := db.FindItem(folderID)
	if !ok {
		return model.Item{}, false
	}
	if it.Type.IsCase() {
		return it, true
	}
	for _, a := range db.AncestorsOf(folderID) {
		if a.Type.IsCase() {
			return a, true
		}
	}
	return model.Item{}, false
}

// CaseEvidence gathers the files and notes filed under a case-folder, recursing through
// plain folders but not into nested case-folders.
func (db *DB) CaseEvidence(caseID string) []model.Item {
	out := []model.Item{}
	stack := []string{caseID}
	seen := map[string]bool{}
	for len(stack) > 0 {
		folderID := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[folderID] {
			continue
		}
		seen[folderID] = true

		children := db.ChildrenOf(folderID)
		var sub []string
		for _, ch := range children {
			switch ch.Type {
			case model.ItemTypeFile, model.ItemTypeNote:
				out = append(out, ch)
			case model.ItemTypeFolder:
				sub = append(sub, ch.ID)
			case model.ItemTypeSmartFolder:
				// Separate case.
			}
		}
		for i := len(sub) - 1; i >= 0; i-- {
			stack = append(stack, sub[i])
		}
	}
	return out
}

// AnalysisContext describes where an item filed under parentID lives, for the analyst.
func (db *DB) AnalysisContext(parentID string) string {
	if parentID == model.RootID {
		return "General"
	}
	parent, ok := db.FindItem(parentID)
	if !ok {
		return "General"
	}
	ctx := parent.Name
	if c, ok := db.EnclosingCase(parent.ID); ok {
		ctx = fmt.Sprintf("Case: %s, Category: %s", c.Name, ctx)
	}
	return ctx
}

// Create adds an item. A SMART_FOLDER gets a fresh case record in the same step.
func (db *DB) Create(it model.Item) error {
	return db.create(it, model.Case{ID: it.ID, Scenario: DefaultCaseScenario})
}

// CreateCase adds a SMART_FOLDER item together with the given case record.
func (db *DB) CreateCase(it model.Item, c model.Case) error {
	if !it.Type.IsCase() {
		return fmt.Errorf("%w: %s is not a case-folder", ErrInvalidType, it.ID)
	}
	return db.create(it, c)
}

func (db *DB) create(it model.Item, c model.Case) error {
	it.ID = strings.TrimSpace(it.ID)
	if it.ID == "" {
		return errors.New("item id is empty")
	}
	if !it.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, it.Type)
	}
	if _, exists := db.FindItem(it.ID); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
	}
	if err := db.checkParent(it.ID, it.ParentID); err != nil {
		return err
	}
	if it.AnalysisStatus == "" {
		it.AnalysisStatus = model.AnalysisCompleted
	}

	next := make([]model.Item, 0, len(db.Items)+1)
	next = append(next, db.Items...)
	next = append(next, it)
	db.Items = next

	if it.Type.IsCase() {
		c.ID = it.ID
		c.ConfidenceScore = model.ClampConfidence(c.ConfidenceScore)
		db.replaceCases(func(m map[string]model.Case) { m[it.ID] = c.Clone() })
	}
	return nil
}

// Update applies p to the item with the given id.
func (db *DB) Update(id string, p Patch) error {
	idx := -1
	for i := range db.Items {
		if db.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	it := db.Items[idx]
	if p.ParentID != nil && *p.ParentID != it.ParentID {
		if err := db.checkParent(id, *p.ParentID); err != nil {
			return err
		}
		it.ParentID = *p.ParentID
	}
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Position != nil {
		it.Position = *p.Position
	}
	if p.Content != nil {
		it.Content = *p.Content
	}
	if p.AnalysisStatus != nil {
		it.AnalysisStatus = *p.AnalysisStatus
	}
	if p.AISummary != nil {
		it.AISummary = *p.AISummary
	}

	next := make([]model.Item, len(db.Items))
	copy(next, db.Items)
	next[idx] = it
	db.Items = next
	return nil
}

// Delete removes the given items and all of their descendants, plus the case record of
// every removed case-folder. Unknown ids are ignored. It returns the removed ids.
func (db *DB) Delete(ids ...string) []string {
	doomed := map[string]bool{}
	for _, id := range ids {
		if _, ok := db.FindItem(id); ok {
			doomed[id] = true
		}
	}
	if len(doomed) == 0 {
		return []string{}
	}
	for _, id := range db.DescendantsOf(keys(doomed)...) {
		doomed[id] = true
	}

	removed := []string{}
	next := make([]model.Item, 0, len(db.Items))
	for _, it := range db.Items {
		if doomed[it.ID] {
			removed = append(removed, it.ID)
			continue
		}
		next = append(next, it)
	}
	db.Items = next
	db.replaceCases(func(m map[string]model.Case) {
		for _, id := range removed {
			delete(m, id)
		}
	})
	return removed
}

func (db *DB) UpdateCase(id string, p CasePatch) error {
	c, ok := db.Cases[id]
	if !ok {
		return fmt.Errorf("%w: case %s", ErrNotFound, id)
	}
	c = c.Clone()
	if p.Scenario != nil {
		c.Scenario = *p.Scenario
	}
	if p.ConfidenceScore != nil {
		c.ConfidenceScore = model.ClampConfidence(*p.ConfidenceScore)
	}
	if p.PendingQuestions != nil {
		c.PendingQuestions = append([]string(nil), p.PendingQuestions...)
	}
	db.replaceCases(func(m map[string]model.Case) { m[id] = c })
	return nil
}

// AppendChat appends messages to a case's chat history.
func (db *DB) AppendChat(id string, msgs ...model.ChatMessage) error {
	c, ok := db.Cases[id]
	if !ok {
		return fmt.Errorf("%w: case %s", ErrNotFound, id)
	}
	c = c.Clone()
	c.ChatHistory = append(c.ChatHistory, msgs...)
	db.replaceCases(func(m map[string]model.Case) { m[id] = c })
	return nil
}

// checkParent validates that parentID may hold id: root, or an existing container that is
// neither id itself nor one of its descendants.
func (db *DB) checkParent(id, parentID string) error {
	if parentID == model.RootID {
		return nil
	}
	if parentID == id {
		return fmt.Errorf("%w: %s into itself", ErrCycle, id)
	}
	p, ok := db.FindItem(parentID)
	if !ok {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidParent, parentID)
	}
	if !p.Type.IsContainer() {
		return fmt.Errorf("%w: %s is a %s", ErrInvalidParent, parentID, p.Type)
	}
	for _, d := range db.DescendantsOf(id) {
		if d == parentID {
			return fmt.Errorf("%w: %s is inside %s", ErrCycle, parentID, id)
		}
	}
	return nil
}

func (db *DB) replaceCases(fn func(map[string]model.Case)) {
	next := make(map[string]model.Case, len(db.Cases)+1)
	for k, v := range db.Cases {
		next[k] = v
	}
	fn(next)
	db.Cases = next
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
