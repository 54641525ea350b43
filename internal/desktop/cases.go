package desktop

import (
	"time"

	"casedesk/internal/model"
	"casedesk/internal/store"

	"github.com/google/uuid"
)

// ActiveCase returns the case-folder enclosing the current folder and its record.
func (d *Desktop) ActiveCase() (model.Item, model.Case, bool) {
	it, ok := d.db.EnclosingCase(d.CurrentPath())
	if !ok {
		return model.Item{}, model.Case{}, false
	}
	c, ok := d.db.FindCase(it.ID)
	if !ok {
		return model.Item{}, model.Case{}, false
	}
	return it, c, true
}

func (d *Desktop) Case(id string) (model.Case, bool) { return d.db.FindCase(id) }

// CaseEvidence gathers the files and notes filed under a case-folder.
func (d *Desktop) CaseEvidence(id string) []model.Item { return d.db.CaseEvidence(id) }

// ApplyScenario stores a generated narrative. Results for a deleted case are dropped.
func (d *Desktop) ApplyScenario(id, narrative string, confidence int) bool {
	err := d.db.UpdateCase(id, store.CasePatch{Scenario: &narrative, ConfidenceScore: &confidence})
	if err != nil {
		d.log.WithField("case", id).Debug("scenario dropped")
		return false
	}
	d.log.WithField("case", id).WithField("confidence", confidence).Debug("scenario updated")
	return true
}

// AppendChat adds messages to a case's chat log. Messages for a deleted case are dropped.
func (d *Desktop) AppendChat(id string, msgs ...model.ChatMessage) bool {
	if err := d.db.AppendChat(id, msgs...); err != nil {
		d.log.WithField("case", id).Debug("chat message dropped")
		return false
	}
	return true
}

// Ask records a user message on a case and returns it with the history that preceded it.
func (d *Desktop) Ask(id, text string) (model.ChatMessage, []model.ChatMessage, bool) {
	c, ok := d.db.FindCase(id)
	if !ok {
		return model.ChatMessage{}, nil, false
	}
	msg := NewChatMessage(model.ChatRoleUser, text, d.now())
	if !d.AppendChat(id, msg) {
		return model.ChatMessage{}, nil, false
	}
	return msg, c.ChatHistory, true
}

func NewChatMessage(role model.ChatRole, text string, at time.Time) model.ChatMessage {
	return model.ChatMessage{ID: uuid.NewString(), Role: role, Text: text, Timestamp: at}
}
