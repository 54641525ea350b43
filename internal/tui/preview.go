package tui

import (
	"fmt"
	"strings"

	"casedesk/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

func (m *appModel) openPreview(it model.Item) {
	m.modal = modalPreview
	m.modalForID = it.ID
	m.refreshPreview()
	m.preview.GotoTop()
}

func (m *appModel) refreshPreview() {
	if m.modal != modalPreview {
		return
	}
	it, ok := m.desk.Item(m.modalForID)
	if !ok {
		m.closeModal()
		return
	}
	m.preview.SetContent(previewContent(it, m.preview.Width))
}

// previewContent renders an item for the preview pane. Notes and markdown go through
// glamour, other text is wrapped as-is, and binary content shows metadata only.
func previewContent(it model.Item, width int) string {
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	meta := []string{string(it.Type)}
	if it.MimeType != "" {
		meta = append(meta, it.MimeType)
	}
	if it.Size != "" {
		meta = append(meta, it.Size)
	}
	meta = append(meta, it.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString(styleMuted().Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	switch {
	case it.Type == model.ItemTypeNote || strings.HasSuffix(strings.ToLower(it.Name), ".md"):
		if strings.TrimSpace(it.Content) == "" {
			b.WriteString(styleMuted().Render("(empty)"))
		} else {
			b.WriteString(renderMarkdown(it.Content, width))
		}
	case it.IsEditable():
		b.WriteString(wordwrap.String(it.Content, width))
	case strings.HasPrefix(it.Content, "data:"):
		b.WriteString(styleMuted().Render(fmt.Sprintf("Binary content (%s) cannot be shown in the terminal.", it.MimeType)))
	default:
		b.WriteString(wordwrap.String(it.Content, width))
	}

	if it.AnalysisStatus != model.AnalysisCompleted || it.AISummary != "" {
		b.WriteString("\n\n")
		b.WriteString(styleAccent().Render("AI analysis: " + string(it.AnalysisStatus)))
		if it.AISummary != "" {
			b.WriteString("\n")
			b.WriteString(wordwrap.String(it.AISummary, width))
		}
	}
	return b.String()
}

func (m appModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
		return m, nil
	case "e":
		it, ok := m.desk.Item(m.modalForID)
		if !ok || !it.IsEditable() {
			return m, nil
		}
		m.modal = modalEditContent
		m.textarea.SetValue(it.Content)
		m.textarea.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m appModel) updateEditContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.textarea.Blur()
		m.modal = modalPreview
		m.refreshPreview()
		return m, nil
	case "ctrl+s":
		if _, err := m.desk.SaveContent(m.modalForID, m.textarea.Value()); err != nil {
			m.minibuffer = err.Error()
		}
		m.textarea.Blur()
		m.modal = modalPreview
		m.refreshPreview()
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m appModel) renderPreview() string {
	it, _ := m.desk.Item(m.modalForID)
	help := "↑/↓: scroll   esc: close"
	if it.IsEditable() {
		help = "↑/↓: scroll   e: edit   esc: close"
	}
	return renderModalBox(m.width, it.Name, m.preview.View()+"\n\n"+styleMuted().Render(help))
}
