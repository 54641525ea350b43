package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"casedesk/internal/model"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModels names the model used for each request kind.
type GeminiModels struct {
	Analysis string
	Scenario string
	Chat     string
}

type Gemini struct {
	client *genai.Client
	models GeminiModels
}

func NewGemini(ctx context.Context, apiKey string, models GeminiModels) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, models: models}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// NewAnalyst returns a Gemini analyst when a key is available and Offline otherwise.
// The returned func releases the client.
func NewAnalyst(ctx context.Context, apiKey string, models GeminiModels) (Analyst, func() error, error) {
	if strings.TrimSpace(apiKey) == "" {
		return Offline{}, func() error { return nil }, nil
	}
	g, err := NewGemini(ctx, apiKey, models)
	if err != nil {
		return nil, nil, err
	}
	return g, g.Close, nil
}

func (g *Gemini) Summarize(ctx context.Context, item model.Item, scope string) (string, error) {
	m := g.client.GenerativeModel(g.models.Analysis)
	resp, err := m.GenerateContent(ctx, genai.Text(summaryPrompt(item, scope)))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func (g *Gemini) Scenario(ctx context.Context, caseName string, evidence []model.Item) (Scenario, error) {
	m := g.client.GenerativeModel(g.models.Scenario)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scenario":   {Type: genai.TypeString},
			"confidence": {Type: genai.TypeNumber},
		},
		Required: []string{"scenario", "confidence"},
	}
	resp, err := m.GenerateContent(ctx, genai.Text(scenarioPrompt(caseName, evidence)))
	if err != nil {
		return Scenario{}, err
	}
	return parseScenario(responseText(resp))
}

func (g *Gemini) Chat(ctx context.Context, history []model.ChatMessage, message, caseName string) (string, error) {
	m := g.client.GenerativeModel(g.models.Chat)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(
			"You are a detective assistant helping with the case %q. Be concise and analytical.", caseName))},
	}
	cs := m.StartChat()
	for _, msg := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  string(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func summaryPrompt(item model.Item, scope string) string {
	content := item.Content
	if strings.HasPrefix(content, "data:") {
		content = "(binary " + item.MimeType + ")"
	}
	if len(content) > 2000 {
		content = content[:2000]
	}
	return fmt.Sprintf(`Analyze this file in the context of: %s.
File name: %s
Type: %s
Content preview: %s

Provide a 1-sentence summary of its relevance.`, scope, item.Name, item.MimeType, content)
}

func scenarioPrompt(caseName string, evidence []model.Item) string {
	var b strings.Builder
	for _, it := range evidence {
		summary := it.AISummary
		if summary == "" {
			summary = "No analysis"
		}
		fmt.Fprintf(&b, "- File: %s (%s): %s\n", it.Name, it.Type, summary)
	}
	return fmt.Sprintf(`You are a detective AI. Construct a scenario for the case %q based on this evidence:
%s
Return the scenario narrative and a confidence score from 0 to 100.`, caseName, b.String())
}

func parseScenario(raw string) (Scenario, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	var out struct {
		Scenario   string   `json:"scenario"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	sc := Scenario{Narrative: out.Scenario, Confidence: defaultConfidence}
	if out.Confidence != nil && *out.Confidence != 0 {
		sc.Confidence = model.ClampConfidence(int(*out.Confidence + 0.5))
	}
	return sc, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		break
	}
	return b.String()
}
