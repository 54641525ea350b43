package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"casedesk/internal/model"

	"gopkg.in/yaml.v3"
)

// SeedFile describes an initial desktop. Seeds are inputs only; nothing is written back.
type SeedFile struct {
	Items []SeedNode `yaml:"items"`
}

type SeedNode struct {
	Name     string          `yaml:"name"`
	Type     string          `yaml:"type"`
	Position *model.Position `yaml:"position,omitempty"`
	Content  string          `yaml:"content,omitempty"`
	MimeType string          `yaml:"mimeType,omitempty"`
	Size     string          `yaml:"size,omitempty"`
	Color    string          `yaml:"color,omitempty"`

	// Case-folder fields.
	Scenario   string `yaml:"scenario,omitempty"`
	Confidence int    `yaml:"confidence,omitempty"`

	Children []SeedNode `yaml:"children,omitempty"`
}

const (
	seedPadding = 50
	seedCell    = 120
	seedColumns = 6
)

// LoadSeedFile parses a YAML seed desktop from disk.
func LoadSeedFile(path string) (SeedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, err
	}
	return ParseSeed(b)
}

func ParseSeed(b []byte) (SeedFile, error) {
	var sf SeedFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed: %w", err)
	}
	return sf, nil
}

// Build creates a fresh DB populated from the seed. Nodes without a position are laid out
// on a grid, six per row, in the order they appear.
func (sf SeedFile) Build(now time.Time) (*DB, error) {
	db := New()

	type pending struct {
		node     SeedNode
		parentID string
		index    int
	}
	queue := make([]pending, 0, len(sf.Items))
	for i, n := range sf.Items {
		queue = append(queue, pending{node: n, parentID: model.RootID, index: i})
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		typ, ok := model.ParseItemType(p.node.Type)
		if !ok {
			return nil, fmt.Errorf("seed item %q: unknown type %q", p.node.Name, p.node.Type)
		}
		name := strings.TrimSpace(p.node.Name)
		if name == "" {
			return nil, fmt.Errorf("seed item of type %s has no name", typ)
		}
		if len(p.node.Children) > 0 && !typ.IsContainer() {
			return nil, fmt.Errorf("seed item %q: only folders can have children", name)
		}

		pos := model.Position{
			X: float64(seedPadding + (p.index%seedColumns)*seedCell),
			Y: float64(seedPadding + (p.index/seedColumns)*seedCell),
		}
		if p.node.Position != nil {
			pos = *p.node.Position
		}
		it := model.Item{
			ID:             db.NewItemID(),
			ParentID:       p.parentID,
			Name:           name,
			Type:           typ,
			Position:       pos,
			CreatedAt:      now,
			Content:        p.node.Content,
			MimeType:       p.node.MimeType,
			Size:           p.node.Size,
			AnalysisStatus: model.AnalysisCompleted,
			Color:          p.node.Color,
		}
		if typ == model.ItemTypeNote && it.Color == "" {
			it.Color = model.RandomNoteColor()
		}

		var err error
		if typ.IsCase() {
			scenario := p.node.Scenario
			if strings.TrimSpace(scenario) == "" {
				scenario = DefaultCaseScenario
			}
			err = db.CreateCase(it, model.Case{Scenario: scenario, ConfidenceScore: p.node.Confidence})
		} else {
			err = db.Create(it)
		}
		if err != nil {
			return nil, err
		}
		for i, ch := range p.node.Children {
			queue = append(queue, pending{node: ch, parentID: it.ID, index: i})
		}
	}
	return db, nil
}

// SupportedExtensions lists the file kinds the sample desktop demonstrates.
var SupportedExtensions = []string{
	"PDF", "DOC", "DOCX", "TXT", "RTF", "ODT", "XLS", "XLSX", "CSV", "TSV",
	"JPG", "JPEG", "PNG", "TIFF", "TIF", "BMP", "HEIC", "MP3", "WAV", "M4A",
	"MP4", "AVI", "MOV", "MKV", "EML", "MSG", "HTML", "JSON", "ZIP", "RAR",
	"7Z", "DAT", "OPT", "LFP", "XML", "MDB", "SQLITE",
}

const sampleScenario = `Based on the initial intake of documents, this case appears to involve a contractual dispute regarding the "Project Alpha" construction timeline. The evidence suggests a disagreement over force majeure clauses invoked during the supply chain disruption of 2023.`

const sampleMinutes = `Meeting Minutes - Oct 24

Attendees: John, Jane, Bob

Topics:
- Case strategy
- Evidence collection
- Timeline review

Action items:
- Bob to review contracts
- Jane to contact witness`

// DefaultSeed is the demo desktop shown when no seed file is given.
func DefaultSeed() SeedFile {
	samples := make([]SeedNode, 0, len(SupportedExtensions))
	for _, ext := range SupportedExtensions {
		samples = append(samples, SeedNode{
			Name:     "Sample File." + strings.ToLower(ext),
			Type:     string(model.ItemTypeFile),
			Content:  fmt.Sprintf("This is a sample content for %s file type.", ext),
			MimeType: "application/octet-stream",
			Size:     "15 kB",
		})
	}
	return SeedFile{Items: []SeedNode{
		{
			Name:       "Project Alpha Case",
			Type:       string(model.ItemTypeSmartFolder),
			Position:   &model.Position{X: 50, Y: 50},
			Scenario:   sampleScenario,
			Confidence: 65,
		},
		{
			Name:     "Personal Notes",
			Type:     string(model.ItemTypeFolder),
			Position: &model.Position{X: 180, Y: 50},
			Children: []SeedNode{{
				Name:     "Meeting Minutes",
				Type:     string(model.ItemTypeNote),
				Position: &model.Position{X: 50, Y: 50},
				Content:  sampleMinutes,
			}},
		},
		{
			Name:     "Supported Formats",
			Type:     string(model.ItemTypeFolder),
			Position: &model.Position{X: 310, Y: 50},
			Children: samples,
		},
	}}
}
