package desktop

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"casedesk/internal/model"
	"casedesk/internal/store"
)

// Order selects how Arrange sorts a folder.
type Order int

const (
	OrderName Order = iota
	OrderDate
	OrderTidy
)

func (o Order) String() string {
	switch o {
	case OrderDate:
		return "date"
	case OrderTidy:
		return "tidy"
	default:
		return "name"
	}
}

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return OrderName, nil
	case "date":
		return OrderDate, nil
	case "tidy":
		return OrderTidy, nil
	default:
		return OrderName, fmt.Errorf("unknown order %q (expected name, date or tidy)", s)
	}
}

// Columns is how many layout cells fit across width.
func Columns(width float64) int {
	return max(1, int(math.Floor((width-LayoutPadding)/CellWidth)))
}

// GridPosition is the anchor of the index-th cell in row-major order.
func GridPosition(index, columns int) model.Position {
	col := index % columns
	row := index / columns
	return model.Position{
		X: float64(LayoutPadding + col*CellWidth),
		Y: float64(LayoutPadding + row*CellHeight),
	}
}

// SortItems orders items for arranging. The sort is stable.
func SortItems(items []model.Item, order Order) {
	switch order {
	case OrderName:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
			if a != b {
				return a < b
			}
			return items[i].Name < items[j].Name
		})
	case OrderDate:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case OrderTidy:
		sort.SliceStable(items, func(i, j int) bool {
			ri, rj := tidyRow(items[i].Position.Y), tidyRow(items[j].Position.Y)
			if ri != rj {
				return ri < rj
			}
			if items[i].Position.X != items[j].Position.X {
				return items[i].Position.X < items[j].Position.X
			}
			return items[i].Position.Y < items[j].Position.Y
		})
	}
}

func tidyRow(y float64) float64 {
	return math.Round(y / TidyRowTolerance)
}

// Arrange snaps the current folder's children to a grid in the given order and returns
// their ids in that order. Items in other folders are not touched.
func (d *Desktop) Arrange(order Order) ([]string, error) {
	items := d.Items()
	SortItems(items, order)
	cols := Columns(d.viewport.Width)
	ids := make([]string, 0, len(items))
	for i, it := range items {
		pos := GridPosition(i, cols)
		if err := d.db.Update(it.ID, store.Patch{Position: &pos}); err != nil {
			return nil, err
		}
		ids = append(ids, it.ID)
	}
	d.log.WithField("order", order.String()).WithField("columns", cols).Debug("arranged folder")
	return ids, nil
}
