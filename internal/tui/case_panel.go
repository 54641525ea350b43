package tui

import (
	"fmt"
	"strings"

	"casedesk/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// chatLines bounds how much history the panel shows.
const chatLines = 12

// openCasePanel shows the case enclosing the current folder, or the selected case-folder
// when viewing from outside.
func (m *appModel) openCasePanel() {
	caseID := ""
	if it, _, ok := m.desk.ActiveCase(); ok {
		caseID = it.ID
	} else if sel := m.desk.VisibleSelection(); len(sel) == 1 {
		if it, ok := m.desk.Item(sel[0]); ok && it.Type.IsCase() {
			caseID = it.ID
		}
	}
	if caseID == "" {
		m.minibuffer = "Open or select a case to see its intel"
		return
	}
	m.modal = modalCase
	m.modalForID = caseID
	m.caseChat.SetValue("")
	m.caseChat.Focus()
}

func (m appModel) updateCasePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	caseID := m.modalForID
	folder, ok := m.desk.Item(caseID)
	if !ok {
		m.closeModal()
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "ctrl+r":
		if m.scenarioRunning {
			return m, nil
		}
		m.scenarioRunning = true
		return m, m.scenarioCmd(caseID, folder.Name, m.desk.CaseEvidence(caseID))
	case "enter":
		text := strings.TrimSpace(m.caseChat.Value())
		if text == "" || m.caseBusy {
			return m, nil
		}
		_, history, ok := m.desk.Ask(caseID, text)
		if !ok {
			return m, nil
		}
		m.caseChat.SetValue("")
		m.caseBusy = true
		return m, m.chatCmd(caseID, folder.Name, history, text)
	}
	var cmd tea.Cmd
	m.caseChat, cmd = m.caseChat.Update(msg)
	return m, cmd
}

func (m appModel) renderCasePanel() string {
	folder, _ := m.desk.Item(m.modalForID)
	c, _ := m.desk.Case(m.modalForID)
	w := modalBodyWidth(m.width) - 2

	var b strings.Builder
	b.WriteString(styleAccent().Render(fmt.Sprintf("Confidence %d%%", c.ConfidenceScore)))
	b.WriteString("  ")
	b.WriteString(confidenceBar(c.ConfidenceScore, 20))
	b.WriteString("  ")
	b.WriteString(styleMuted().Render(plural(len(m.desk.CaseEvidence(folder.ID)), "evidence item")))
	b.WriteString("\n\n")

	if m.scenarioRunning {
		b.WriteString(styleMuted().Render("Generating scenario..."))
	} else {
		b.WriteString(renderMarkdown(c.Scenario, w))
	}
	b.WriteString("\n\n")

	var chat []string
	for _, msg := range c.ChatHistory {
		who := lipgloss.NewStyle().Bold(true).Render("you")
		if msg.Role == model.ChatRoleModel {
			who = styleAccent().Render("ai")
		}
		chat = append(chat, strings.Split(wordwrap.String(who+": "+msg.Text, w), "\n")...)
	}
	if m.caseBusy {
		chat = append(chat, styleMuted().Render("ai is thinking..."))
	}
	if len(chat) > chatLines {
		chat = chat[len(chat)-chatLines:]
	}
	b.WriteString(strings.Join(chat, "\n"))
	if len(chat) > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString(m.caseChat.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("enter: send   ctrl+r: regenerate scenario   esc: close"))
	return renderModalBox(m.width, "Case intel: "+folder.Name, b.String())
}

func confidenceBar(score, width int) string {
	filled := score * width / 100
	return lipgloss.NewStyle().Foreground(colorAccent).Render(strings.Repeat("█", filled)) +
		styleMuted().Render(strings.Repeat("░", width-filled))
}
