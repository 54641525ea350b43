package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	header := normalizePane(m.renderHeader(), m.width, headerRows)
	footer := normalizePane(m.renderFooter(), m.width, footerRows)

	var body string
	if m.modal != modalNone {
		body = lipgloss.Place(m.width, m.canvasRows(), lipgloss.Center, lipgloss.Center, m.renderModal())
	} else {
		body = m.renderCanvas()
	}
	body = normalizePane(body, m.width, m.canvasRows())
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) renderHeader() string {
	parts := []string{styleAccent().Render("casedesk"), "Desktop"}
	for _, it := range m.desk.Breadcrumb() {
		parts = append(parts, it.Name)
	}
	crumbs := lipgloss.NewStyle().Foreground(colorChromeMutedFg).Render(strings.Join(parts[1:], " / "))
	line1 := parts[0] + "  " + crumbs
	if it, c, ok := m.desk.ActiveCase(); ok {
		line1 += "  " + lipgloss.NewStyle().Foreground(colorCase).Render(fmt.Sprintf("case %s · %d%%", it.Name, c.ConfidenceScore))
	}

	line2 := m.minibuffer
	if line2 == "" {
		line2 = styleMuted().Render(m.statusLine())
	}
	return line1 + "\n" + line2
}

func (m appModel) statusLine() string {
	items := m.desk.Items()
	sel := m.desk.Selection()
	s := fmt.Sprintf("%s · %d selected", plural(len(items), "item"), len(sel))
	if len(sel) == 1 {
		if it, ok := m.desk.Item(sel[0]); ok {
			s += " · " + it.Name
			if it.AISummary != "" {
				s += " · " + it.AISummary
			}
		}
	}
	if target, ok := m.desk.DropTarget(); ok {
		if it, ok := m.desk.Item(target); ok {
			s = "drop into " + it.Name
		}
	}
	return s
}

func (m appModel) renderFooter() string {
	var parts []string
	for _, b := range keys.footer() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleMuted().Render(strings.Join(parts, "  "))
}

func (m appModel) renderCanvas() string {
	c := newCanvas(m.canvasCols(), m.canvasRows())
	target, _ := m.desk.DropTarget()
	dragged := map[string]bool{}
	for _, id := range m.desk.DraggedIDs() {
		dragged[id] = true
	}
	items := m.desk.Items()
	if len(items) == 0 {
		c.text(2, 1, "Empty folder. n: note  f: folder  s: case  u: upload", c.style(styleMuted()))
	}
	for _, it := range items {
		c.drawIcon(it, iconState{
			selected: m.desk.IsSelected(it.ID),
			target:   it.ID == target,
			dragged:  dragged[it.ID],
		})
	}
	if r, ok := m.desk.BoxRect(); ok {
		c.drawBox(r)
	}
	return c.String()
}
