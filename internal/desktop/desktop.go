package desktop

import (
	"time"

	"casedesk/internal/logging"
	"casedesk/internal/model"
	"casedesk/internal/store"

	"github.com/sirupsen/logrus"
)

// Geometry, in desktop units.
const (
	IconSize         = 80
	DropProximity    = 50
	LayoutPadding    = 50
	CellWidth        = 120
	CellHeight       = 120
	TidyRowTolerance = 20
	CascadeStep      = 20
)

// DropAnchor is where dropped items land inside their new folder.
var DropAnchor = model.Position{X: 50, Y: 50}

// Mode is the pointer session currently in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrag
	ModeBox
)

func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeBox:
		return "box"
	default:
		return "idle"
	}
}

// Direction of the last navigation, used by views for transitions.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Desktop owns the item store and every piece of view state that acts on it: current
// folder, selection, clipboard, and the active pointer session. It is not safe for
// concurrent use; one event loop drives it.
type Desktop struct {
	db       *store.DB
	now      func() time.Time
	viewport Viewport
	log      *logrus.Entry

	currentPath string
	direction   Direction
	selection   []string

	clipboard *clipboardSnapshot
	drag      *dragSession
	box       *boxSession
}

type Option func(*Desktop)

func WithClock(now func() time.Time) Option {
	return func(d *Desktop) {
		if now != nil {
			d.now = now
		}
	}
}

func WithViewport(v Viewport) Option {
	return func(d *Desktop) { d.viewport = v }
}

func New(db *store.DB, opts ...Option) *Desktop {
	if db == nil {
		db = store.New()
	}
	d := &Desktop{
		db:          db,
		now:         time.Now,
		log:         logging.For("desktop"),
		currentPath: model.RootID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB exposes the store for read access. Its collections are snapshots.
func (d *Desktop) DB() *store.DB { return d.db }

func (d *Desktop) Item(id string) (model.Item, bool) { return d.db.FindItem(id) }

// Items returns the children of the current folder in store order.
func (d *Desktop) Items() []model.Item { return d.db.ChildrenOf(d.CurrentPath()) }

func (d *Desktop) Viewport() Viewport { return d.viewport }

func (d *Desktop) SetViewport(v Viewport) { d.viewport = v }

// Mode reports which pointer session is active.
func (d *Desktop) Mode() Mode {
	switch {
	case d.drag != nil:
		return ModeDrag
	case d.box != nil:
		return ModeBox
	default:
		return ModeIdle
	}
}

// cancelSessions drops any pointer session without applying it.
func (d *Desktop) cancelSessions() {
	d.drag = nil
	d.box = nil
}
