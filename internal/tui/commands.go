package tui

import (
	"casedesk/internal/bridge"
	"casedesk/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages delivered by background work. They are applied on the update loop, which is
// the only writer of the desktop.
type (
	analysisDoneMsg struct {
		res bridge.AnalysisResult
	}
	scenarioDoneMsg struct {
		caseID   string
		scenario bridge.Scenario
	}
	chatReplyMsg struct {
		caseID string
		text   string
	}
)

func (m appModel) analyzeCmd(req bridge.AnalysisRequest) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return analysisDoneMsg{res: svc.Analyze(ctx, req)}
	}
}

func (m appModel) analyzeAll(reqs []bridge.AnalysisRequest) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, m.analyzeCmd(req))
	}
	return tea.Batch(cmds...)
}

func (m appModel) scenarioCmd(caseID, caseName string, evidence []model.Item) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return scenarioDoneMsg{caseID: caseID, scenario: svc.Scenario(ctx, caseName, evidence)}
	}
}

func (m appModel) chatCmd(caseID, caseName string, history []model.ChatMessage, message string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return chatReplyMsg{caseID: caseID, text: svc.Chat(ctx, history, message, caseName)}
	}
}
