package model

import (
	"strings"
	"time"
)

// RootID is the parent id of items that live directly on the desktop.
const RootID = ""

type ItemType string

const (
	ItemTypeFile        ItemType = "FILE"
	ItemTypeFolder      ItemType = "FOLDER"
	ItemTypeSmartFolder ItemType = "SMART_FOLDER"
	ItemTypeNote        ItemType = "NOTE"
)

// ParseItemType accepts the canonical names plus a few lowercase aliases used in seed files.
func ParseItemType(s string) (ItemType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return ItemTypeFile, true
	case "folder":
		return ItemTypeFolder, true
	case "smart_folder", "smart-folder", "case":
		return ItemTypeSmartFolder, true
	case "note":
		return ItemTypeNote, true
	default:
		return "", false
	}
}

// IsContainer reports whether items of this type can hold children. Containers are the
// only navigation targets and the only drop targets.
func (t ItemType) IsContainer() bool {
	switch t {
	case ItemTypeFolder, ItemTypeSmartFolder:
		return true
	case ItemTypeFile, ItemTypeNote:
		return false
	default:
		return false
	}
}

func (t ItemType) IsCase() bool {
	return t == ItemTypeSmartFolder
}

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeFile, ItemTypeFolder, ItemTypeSmartFolder, ItemTypeNote:
		return true
	default:
		return false
	}
}

type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "PENDING"
	AnalysisAnalyzing AnalysisStatus = "ANALYZING"
	AnalysisCompleted AnalysisStatus = "COMPLETED"
	AnalysisFailed    AnalysisStatus = "FAILED"
)

func (s AnalysisStatus) IsTerminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }

type Item struct {
	ID       string   `json:"id" yaml:"id"`
	ParentID string   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Name     string   `json:"name" yaml:"name"`
	Type     ItemType `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// Content is note/text payload or an opaque reference (data URI or URL) for binary files.
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Size     string `json:"size,omitempty" yaml:"size,omitempty"`

	AnalysisStatus AnalysisStatus `json:"analysisStatus" yaml:"analysisStatus"`
	AISummary      string         `json:"aiSummary,omitempty" yaml:"aiSummary,omitempty"`

	// Color is a hex tag, set for notes only.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

func (it Item) IsRoot() bool { return it.ParentID == RootID }

// IsEditable reports whether the preview collaborator may write content back.
func (it Item) IsEditable() bool {
	switch it.Type {
	case ItemTypeNote:
		return true
	case ItemTypeFile:
		return IsTextContent(it.MimeType, it.Name)
	case ItemTypeFolder, ItemTypeSmartFolder:
		return false
	default:
		return false
	}
}

// IsTextContent reports whether content of this MIME type / name is stored as decoded text.
func IsTextContent(mimeType, name string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if strings.HasPrefix(mt, "text/") || mt == "application/json" {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range []string{".md", ".ts", ".tsx", ".go", ".txt", ".json", ".csv"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatMessage struct {
	ID        string    `json:"id" yaml:"id"`
	Role      ChatRole  `json:"role" yaml:"role"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Case is the extended record of a SMART_FOLDER item and shares its id.
type Case struct {
	ID               string        `json:"id" yaml:"id"`
	Scenario         string        `json:"scenario" yaml:"scenario"`
	ConfidenceScore  int           `json:"confidenceScore" yaml:"confidenceScore"`
	PendingQuestions []string      `json:"pendingQuestions" yaml:"pendingQuestions,omitempty"`
	ChatHistory      []ChatMessage `json:"chatHistory" yaml:"chatHistory,omitempty"`
}

// Clone returns a copy that shares no slices with c.
func (c Case) Clone() Case {
	out := c
	out.PendingQuestions = append([]string(nil), c.PendingQuestions...)
	out.ChatHistory = append([]ChatMessage(nil), c.ChatHistory...)
	return out
}

func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
