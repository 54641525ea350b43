package tui

import (
	"errors"
	"fmt"
	"strings"

	"casedesk/internal/desktop"
	"casedesk/internal/model"
	"casedesk/internal/mutate"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshPreview()
		return m, nil

	case analysisDoneMsg:
		if m.desk.ApplyAnalysis(msg.res) && msg.res.Failed {
			if it, ok := m.desk.Item(msg.res.ItemID); ok {
				m.minibuffer = "Analysis failed: " + it.Name
			}
		}
		if m.modal == modalPreview && m.modalForID == msg.res.ItemID {
			m.refreshPreview()
		}
		return m, nil

	case scenarioDoneMsg:
		m.scenarioRunning = false
		m.desk.ApplyScenario(msg.caseID, msg.scenario.Narrative, msg.scenario.Confidence)
		return m, nil

	case chatReplyMsg:
		m.caseBusy = false
		m.desk.AppendChat(msg.caseID, desktop.NewChatMessage(model.ChatRoleModel, msg.text, m.now()))
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}
	return m.forwardToModal(msg)
}

// handleMouse routes pointer events. A left press on an item starts a drag, on empty
// canvas a box selection; motion feeds the active session and release ends it.
func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.modal != modalNone {
		return nil
	}
	p, inCanvas := m.canvasPos(msg.X, msg.Y)
	modifier := msg.Alt || msg.Ctrl

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inCanvas {
			return nil
		}
		m.minibuffer = ""
		m.pointer = p
		it, onItem := m.desk.ItemAt(p)
		if !onItem {
			m.lastClickID = ""
			m.desk.BeginBox(p, modifier)
			return nil
		}
		now := m.now()
		if it.ID == m.lastClickID && now.Sub(m.lastClickAt) <= m.doubleClick {
			m.lastClickID = ""
			return m.open(it.ID)
		}
		m.lastClickID, m.lastClickAt = it.ID, now
		m.desk.PressItem(it.ID, p, modifier)

	case tea.MouseActionMotion:
		if m.desk.Mode() == desktop.ModeIdle {
			return nil
		}
		m.desk.MovePointer(p)

	case tea.MouseActionRelease:
		out := m.desk.Release()
		switch {
		case out.Err != nil:
			m.minibuffer = dropErrorText(out.Err)
		case out.Dropped:
			if target, ok := m.desk.Item(out.Target); ok {
				m.minibuffer = fmt.Sprintf("Moved %s into %s", plural(len(m.desk.Selection()), "item"), target.Name)
			}
		}
	}
	return nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.minibuffer = ""
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Open):
		if sel := m.desk.VisibleSelection(); len(sel) > 0 {
			cmd := m.open(sel[0])
			return m, cmd
		}

	case key.Matches(msg, keys.Up):
		m.desk.Up()

	case key.Matches(msg, keys.SelectAll):
		m.desk.SelectAll()

	case key.Matches(msg, keys.Copy):
		n := m.desk.Copy()
		if n == 0 {
			m.minibuffer = "Nothing selected"
			break
		}
		m.minibuffer = "Copied " + plural(n, "item")
		if err := copyToClipboard(strings.Join(m.desk.CopiedNames(), "\n")); err != nil {
			m.minibuffer += " (system clipboard unavailable)"
		}

	case key.Matches(msg, keys.Paste):
		ids, err := m.desk.Paste()
		switch {
		case err != nil:
			m.minibuffer = "Paste failed: " + err.Error()
		case len(ids) > 0:
			m.minibuffer = "Pasted " + plural(len(ids), "item")
		}

	case key.Matches(msg, keys.Delete):
		if len(m.desk.VisibleSelection()) > 0 {
			m.modal = modalConfirmDelete
		}

	case key.Matches(msg, keys.Rename):
		if sel := m.desk.VisibleSelection(); len(sel) > 0 {
			m.openRename(sel[0])
			return m, nil
		}

	case key.Matches(msg, keys.NewNote):
		m.createItem(model.ItemTypeNote)
	case key.Matches(msg, keys.NewFolder):
		m.createItem(model.ItemTypeFolder)
	case key.Matches(msg, keys.NewCase):
		m.createItem(model.ItemTypeSmartFolder)

	case key.Matches(msg, keys.Upload):
		m.openPrompt(modalUpload, "", "file paths, space separated")

	case key.Matches(msg, keys.Arrange):
		m.modal = modalArrange
		m.arrangeIdx = 0

	case key.Matches(msg, keys.Find):
		m.openPrompt(modalFind, "", "name")

	case key.Matches(msg, keys.CasePanel):
		m.openCasePanel()
	}
	return m, nil
}

// open navigates into folders and previews everything else.
func (m *appModel) open(id string) tea.Cmd {
	res, err := m.desk.Open(id)
	if err != nil {
		m.minibuffer = err.Error()
		return nil
	}
	if !res.Navigated {
		m.openPreview(res.Item)
	}
	return nil
}

func (m *appModel) createItem(typ model.ItemType) {
	it, err := m.desk.NewItem(typ, m.pointer)
	if err != nil {
		var nested mutate.NestedCaseError
		if errors.As(err, &nested) {
			m.minibuffer = "Cases cannot be nested: this folder is already inside a case"
			return
		}
		m.minibuffer = err.Error()
		return
	}
	step := float64(desktop.CascadeStep)
	m.pointer = m.desk.Viewport().Clamp(m.pointer.Add(model.Position{X: step, Y: step}))
	m.openRename(it.ID)
}

func dropErrorText(err error) string {
	var cycle mutate.CycleError
	if errors.As(err, &cycle) {
		return "Cannot move a folder into itself"
	}
	return "Move failed: " + err.Error()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
