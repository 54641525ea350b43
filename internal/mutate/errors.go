package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// CycleError is returned when a move would put an item inside its own subtree.
type CycleError struct {
	ItemID   string
	TargetID string
}

func (e CycleError) Error() string {
	if e.ItemID == e.TargetID {
		return fmt.Sprintf("cannot move %s into itself", e.ItemID)
	}
	return fmt.Sprintf("cannot move %s into its own descendant %s", e.ItemID, e.TargetID)
}

type NotContainerError struct {
	ID string
}

func (e NotContainerError) Error() string {
	return fmt.Sprintf("%s is not a folder", e.ID)
}

type NotEditableError struct {
	ID string
}

func (e NotEditableError) Error() string {
	return fmt.Sprintf("%s has no editable content", e.ID)
}

// NestedCaseError is returned when creating a case-folder inside an existing case.
type NestedCaseError struct {
	CaseID string
}

func (e NestedCaseError) Error() string {
	// Keep this generic; the TUI shows its own wording.
	return "already inside case " + e.CaseID
}
