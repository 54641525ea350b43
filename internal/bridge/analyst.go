package bridge

import (
	"context"
	"strings"

	"casedesk/internal/logging"
	"casedesk/internal/model"

	"github.com/google/uuid"
)

// Fallback texts shown in place of a collaborator answer.
const (
	AnalysisFailedText = "Analysis failed due to error."
	ScenarioFailedText = "Error generating scenario."
	ChatFailedText     = "Error in chat processing."
	AnalysisMissingKey = "AI Service Unavailable (Missing Key)"
	ScenarioMissingKey = "AI Unavailable. Please check API Key."
	ChatMissingKey     = "AI Not Initialized"
	NoAnalysisText     = "No analysis available."
	NoScenarioText     = "Could not generate scenario."
	NoChatResponseText = "No response generated."

	defaultConfidence = 50
)

type Scenario struct {
	Narrative  string `json:"scenario"`
	Confidence int    `json:"confidence"`
}

// Analyst is the AI collaborator. Implementations may fail; Service turns failures into
// placeholder text.
type Analyst interface {
	Summarize(ctx context.Context, item model.Item, scope string) (string, error)
	Scenario(ctx context.Context, caseName string, evidence []model.Item) (Scenario, error)
	Chat(ctx context.Context, history []model.ChatMessage, message, caseName string) (string, error)
}

// AnalysisRequest is a snapshot of an item taken when its analysis starts.
type AnalysisRequest struct {
	RequestID string
	Item      model.Item
	Context   string
}

func NewAnalysisRequest(item model.Item, scope string) AnalysisRequest {
	return AnalysisRequest{RequestID: uuid.NewString(), Item: item, Context: scope}
}

// AnalysisResult is the terminal update for one item.
type AnalysisResult struct {
	ItemID  string
	Summary string
	Failed  bool
}

// Service is the boundary between the desktop and an Analyst. It never returns errors.
type Service struct {
	analyst Analyst
}

func NewService(a Analyst) *Service {
	if a == nil {
		a = Offline{}
	}
	return &Service{analyst: a}
}

func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) AnalysisResult {
	log := logging.For("bridge").WithField("item", req.Item.ID).WithField("request", req.RequestID)
	summary, err := s.analyst.Summarize(ctx, req.Item, req.Context)
	if err != nil {
		log.WithError(err).Warn("analysis failed")
		return AnalysisResult{ItemID: req.Item.ID, Summary: AnalysisFailedText, Failed: true}
	}
	if strings.TrimSpace(summary) == "" {
		summary = NoAnalysisText
	}
	log.Debug("analysis completed")
	return AnalysisResult{ItemID: req.Item.ID, Summary: summary}
}

func (s *Service) Scenario(ctx context.Context, caseName string, evidence []model.Item) Scenario {
	sc, err := s.analyst.Scenario(ctx, caseName, evidence)
	if err != nil {
		logging.For("bridge").WithError(err).WithField("case", caseName).Warn("scenario generation failed")
		return Scenario{Narrative: ScenarioFailedText, Confidence: 0}
	}
	if strings.TrimSpace(sc.Narrative) == "" {
		sc.Narrative = NoScenarioText
	}
	sc.Confidence = model.ClampConfidence(sc.Confidence)
	return sc
}

func (s *Service) Chat(ctx context.Context, history []model.ChatMessage, message, caseName string) string {
	reply, err := s.analyst.Chat(ctx, history, message, caseName)
	if err != nil {
		logging.For("bridge").WithError(err).WithField("case", caseName).Warn("chat failed")
		return ChatFailedText
	}
	if strings.TrimSpace(reply) == "" {
		return NoChatResponseText
	}
	return reply
}

// Offline answers every request with a fixed notice. It is used when no API key is set.
type Offline struct{}

func (Offline) Summarize(context.Context, model.Item, string) (string, error) {
	return AnalysisMissingKey, nil
}

func (Offline) Scenario(context.Context, string, []model.Item) (Scenario, error) {
	return Scenario{Narrative: ScenarioMissingKey, Confidence: 0}, nil
}

func (Offline) Chat(context.Context, []model.ChatMessage, string, string) (string, error) {
	return ChatMissingKey, nil
}
