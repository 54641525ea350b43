package tui

import (
	"context"
	"time"

	"casedesk/internal/bridge"
	"casedesk/internal/desktop"
	"casedesk/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

const (
	headerRows = 2
	footerRows = 1

	defaultDoubleClick = 400 * time.Millisecond
)

type modalKind int

const (
	modalNone modalKind = iota
	modalRename
	modalUpload
	modalFind
	modalArrange
	modalConfirmDelete
	modalPreview
	modalEditContent
	modalCase
)

type appModel struct {
	desk *desktop.Desktop
	svc  *bridge.Service
	ctx  context.Context
	now  func() time.Time

	width  int
	height int

	doubleClick time.Duration
	lastClickID string
	lastClickAt time.Time
	// pointer is the last canvas position seen, used to place new items.
	pointer model.Position

	modal      modalKind
	modalForID string
	input      textinput.Model
	textarea   textarea.Model
	preview    viewport.Model
	arrangeIdx int

	// Case panel state.
	caseChat        textinput.Model
	caseBusy        bool
	scenarioRunning bool

	// minibuffer is a one-line status shown under the breadcrumb.
	minibuffer string
}

func newAppModel(ctx context.Context, desk *desktop.Desktop, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	svc := opts.Service
	if svc == nil {
		svc = bridge.NewService(nil)
	}
	dc := opts.DoubleClick
	if dc <= 0 {
		dc = defaultDoubleClick
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 512

	chat := textinput.New()
	chat.Prompt = "ask> "
	chat.Placeholder = "Ask about this case"
	chat.CharLimit = 2000

	ta := textarea.New()
	ta.ShowLineNumbers = false

	return appModel{
		desk:        desk,
		svc:         svc,
		ctx:         ctx,
		now:         now,
		doubleClick: dc,
		pointer:     desktop.DropAnchor,
		input:       in,
		caseChat:    chat,
		textarea:    ta,
		preview:     viewport.New(0, 0),
	}
}

func (m appModel) canvasCols() int { return max(0, m.width) }

func (m appModel) canvasRows() int { return max(0, m.height-headerRows-footerRows) }

// canvasPos converts a screen cell to desktop units. ok is false outside the canvas.
func (m appModel) canvasPos(x, y int) (model.Position, bool) {
	row := y - headerRows
	inside := x >= 0 && x < m.canvasCols() && row >= 0 && row < m.canvasRows()
	return cellToPos(x, row), inside
}

func (m *appModel) resize(width, height int) {
	m.width, m.height = width, height
	m.desk.SetViewport(canvasViewport(m.canvasCols(), m.canvasRows()))
	w := modalBodyWidth(width)
	m.input.Width = w - 4
	m.caseChat.Width = w - 8
	m.textarea.SetWidth(w)
	m.textarea.SetHeight(max(3, height/2))
	m.preview.Width = w
	m.preview.Height = max(3, height-10)
}
