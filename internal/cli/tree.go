package cli

import (
	"time"

	"casedesk/internal/model"
	"casedesk/internal/store"

	"github.com/spf13/cobra"
)

// treeNode is an item with its case record (for case-folders) and children nested in.
type treeNode struct {
	model.Item `yaml:",inline"`
	Case       *model.Case `json:"case,omitempty" yaml:"case,omitempty"`
	Children   []treeNode  `json:"children,omitempty" yaml:"children,omitempty"`
}

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the starting desktop as a nested tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.loadDB(time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": buildTree(db, model.RootID)})
		},
	}
}

func buildTree(db *store.DB, parentID string) []treeNode {
	children := db.ChildrenOf(parentID)
	out := make([]treeNode, 0, len(children))
	for _, it := range children {
		n := treeNode{Item: it}
		if it.Type.IsCase() {
			if c, ok := db.FindCase(it.ID); ok {
				n.Case = &c
			}
		}
		if it.Type.IsContainer() {
			n.Children = buildTree(db, it.ID)
		}
		out = append(out, n)
	}
	return out
}
