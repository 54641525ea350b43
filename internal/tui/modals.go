package tui

import (
	"fmt"
	"strings"

	"casedesk/internal/bridge"
	"casedesk/internal/desktop"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var arrangeOrders = []desktop.Order{desktop.OrderName, desktop.OrderDate, desktop.OrderTidy}

func (m *appModel) openRename(id string) {
	it, ok := m.desk.Item(id)
	if !ok {
		return
	}
	m.openPrompt(modalRename, it.Name, "")
	m.modalForID = id
}

func (m *appModel) openPrompt(kind modalKind, value, placeholder string) {
	m.modal = kind
	m.modalForID = ""
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalForID = ""
	m.input.Blur()
	m.caseChat.Blur()
	m.textarea.Blur()
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalRename:
		switch msg.String() {
		case "esc":
			m.closeModal()
			return m, nil
		case "enter":
			if _, err := m.desk.Rename(m.modalForID, m.input.Value()); err != nil {
				m.minibuffer = err.Error()
			}
			m.closeModal()
			return m, nil
		}

	case modalUpload:
		switch msg.String() {
		case "esc":
			m.closeModal()
			return m, nil
		case "enter":
			paths := splitUploadPaths(m.input.Value())
			m.closeModal()
			cmd := m.upload(paths)
			return m, cmd
		}

	case modalFind:
		switch msg.String() {
		case "esc", "enter":
			m.closeModal()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.desk.SelectMatching(m.input.Value())
		return m, cmd

	case modalArrange:
		switch msg.String() {
		case "esc", "q":
			m.closeModal()
		case "up", "k":
			m.arrangeIdx = (m.arrangeIdx + len(arrangeOrders) - 1) % len(arrangeOrders)
		case "down", "j", "tab":
			m.arrangeIdx = (m.arrangeIdx + 1) % len(arrangeOrders)
		case "n":
			m.arrange(desktop.OrderName)
		case "d":
			m.arrange(desktop.OrderDate)
		case "t":
			m.arrange(desktop.OrderTidy)
		case "enter":
			m.arrange(arrangeOrders[m.arrangeIdx])
		}
		return m, nil

	case modalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			removed := m.desk.DeleteSelection()
			m.minibuffer = "Deleted " + plural(len(removed), "item")
			m.closeModal()
		case "n", "esc", "q":
			m.closeModal()
		}
		return m, nil

	case modalPreview:
		return m.updatePreview(msg)

	case modalEditContent:
		return m.updateEditContent(msg)

	case modalCase:
		return m.updateCasePanel(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// forwardToModal hands non-key messages (cursor blink and the like) to the focused widget.
func (m appModel) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.modal {
	case modalRename, modalUpload, modalFind:
		m.input, cmd = m.input.Update(msg)
	case modalEditContent:
		m.textarea, cmd = m.textarea.Update(msg)
	case modalCase:
		m.caseChat, cmd = m.caseChat.Update(msg)
	}
	return m, cmd
}

func (m *appModel) arrange(order desktop.Order) {
	if _, err := m.desk.Arrange(order); err != nil {
		m.minibuffer = "Arrange failed: " + err.Error()
	} else {
		m.minibuffer = "Arranged by " + order.String()
	}
	m.closeModal()
}

// upload reads files, adds them to the current folder and starts their analysis.
func (m *appModel) upload(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	ups, err := bridge.ReadUploads(paths)
	if err != nil {
		m.minibuffer = err.Error()
		return nil
	}
	items, err := m.desk.AddUploads(ups)
	if err != nil {
		m.minibuffer = "Upload failed: " + err.Error()
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if len(ids) > 0 {
		m.minibuffer = "Uploaded " + plural(len(ids), "file")
	}
	return m.analyzeAll(m.desk.BeginPendingAnalyses(ids))
}

func modalBodyWidth(width int) int {
	w := width - 10
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(width int, title, body string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)
	content := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Render(body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalRename:
		return renderModalBox(m.width, "Rename", m.input.View()+"\n\n"+styleMuted().Render("enter: save   esc: cancel"))
	case modalUpload:
		return renderModalBox(m.width, "Upload files", m.input.View()+"\n\n"+styleMuted().Render("enter: upload   esc: cancel"))
	case modalFind:
		n := len(m.desk.Selection())
		return renderModalBox(m.width, "Find in folder", m.input.View()+"\n\n"+styleMuted().Render(fmt.Sprintf("%s selected   enter/esc: done", plural(n, "item"))))
	case modalArrange:
		var lines []string
		for i, o := range arrangeOrders {
			label := "  " + o.String()
			if i == m.arrangeIdx {
				label = styleAccent().Render("> " + o.String())
			}
			lines = append(lines, label)
		}
		lines = append(lines, "", styleMuted().Render("n/d/t or enter: arrange   esc: cancel"))
		return renderModalBox(m.width, "Auto-arrange", strings.Join(lines, "\n"))
	case modalConfirmDelete:
		n := len(m.desk.VisibleSelection())
		body := fmt.Sprintf("Delete %s and everything inside?", plural(n, "item"))
		return renderModalBox(m.width, "Delete", body+"\n\n"+styleMuted().Render("y/enter: delete   n/esc: cancel"))
	case modalPreview:
		return m.renderPreview()
	case modalEditContent:
		return renderModalBox(m.width, "Edit", m.textarea.View()+"\n\n"+styleMuted().Render("ctrl+s: save   esc: cancel"))
	case modalCase:
		return m.renderCasePanel()
	}
	return ""
}
