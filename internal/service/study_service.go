package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/parser"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
	"github.com/phrazzld/omnistudy/internal/prompt"
)

// Generator runs a completion request across the configured providers.
// generation.Gateway implements it.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) generation.Outcome
}

// TextResult is a free-form completion and the provider/model that served it.
type TextResult struct {
	Text     string
	Provider string
	Model    string
}

// RecordsResult is a structured completion. When Degraded is set, Records
// holds one placeholder record built from Raw.
type RecordsResult struct {
	Records  []parser.Record
	Degraded bool
	Raw      string
	Provider string
	Model    string
}

// ExplainInput holds the parameters of an explanation request.
type ExplainInput struct {
	Concept  string
	Socratic bool
	// Image is optional; only providers that accept images will see it
	Image *generation.Image
}

// SummarizeInput holds the parameters of a summary request.
type SummarizeInput struct {
	Text   string
	Length domain.SummaryLength
}

// QuizInput holds the parameters of a quiz request. A zero Count uses the default.
type QuizInput struct {
	Topic      string
	Count      int
	Difficulty domain.Difficulty
}

// FlashcardsInput holds the parameters of a flashcard request. A zero Count uses the default.
type FlashcardsInput struct {
	Topic string
	Count int
}

// AnalyzeDocumentInput holds the parameters of a document analysis request.
type AnalyzeDocumentInput struct {
	Content string
	Type    domain.AnalysisType
}

// DocumentChatInput holds the parameters of a question about a document.
type DocumentChatInput struct {
	Content  string
	Question string
	Socratic bool
}

// MnemonicInput holds the parameters of a mnemonic request.
type MnemonicInput struct {
	Concept string
	Type    domain.MnemonicType
}

// StoryInput holds the parameters of a story request.
type StoryInput struct {
	Topic    string
	Style    domain.StoryStyle
	Audience domain.Audience
}

// StudyService provides one operation per study feature.
type StudyService interface {
	// Explain explains a concept, optionally with an accompanying image
	Explain(ctx context.Context, in ExplainInput) (*TextResult, error)

	// Summarize summarizes text at the requested length
	Summarize(ctx context.Context, in SummarizeInput) (*TextResult, error)

	// Quiz generates multiple-choice questions
	Quiz(ctx context.Context, in QuizInput) (*RecordsResult, error)

	// Flashcards generates front/back study cards
	Flashcards(ctx context.Context, in FlashcardsInput) (*RecordsResult, error)

	// AnalyzeDocument runs one kind of analysis over document content
	AnalyzeDocument(ctx context.Context, in AnalyzeDocumentInput) (*TextResult, error)

	// DocumentChat answers a question grounded in document content
	DocumentChat(ctx context.Context, in DocumentChatInput) (*TextResult, error)

	// Mnemonic creates a memory aid
	Mnemonic(ctx context.Context, in MnemonicInput) (*TextResult, error)

	// Story writes an educational story
	Story(ctx context.Context, in StoryInput) (*TextResult, error)

	// Providers reports the configured provider tiers
	Providers() generation.Status
}

// Describer is implemented by generators that can report their configuration.
type Describer interface {
	Describe() generation.Status
}

// studyServiceImpl implements the StudyService interface
type studyServiceImpl struct {
	generator Generator
	logger    *slog.Logger
}

// NewStudyService creates a StudyService backed by generator.
func NewStudyService(generator Generator, log *slog.Logger) (StudyService, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if log == nil {
		log = slog.Default()
	}
	return &studyServiceImpl{
		generator: generator,
		logger:    log.With(slog.String("component", "study_service")),
	}, nil
}

func (s *studyServiceImpl) Explain(ctx context.Context, in ExplainInput) (*TextResult, error) {
	if err := domain.RequireText("concept", in.Concept); err != nil {
		return nil, err
	}
	p, err := prompt.Explain(in.Concept, in.Socratic)
	if err != nil {
		return nil, NewStudyServiceError("explain", "failed to build prompt", err)
	}
	req := generation.NewTextRequest(p)
	req.Image = in.Image
	return s.text(ctx, "explain", req)
}

func (s *studyServiceImpl) Summarize(ctx context.Context, in SummarizeInput) (*TextResult, error) {
	if err := domain.RequireText("text", in.Text); err != nil {
		return nil, err
	}
	p, err := prompt.Summarize(in.Text, in.Length)
	if err != nil {
		return nil, NewStudyServiceError("summarize", "failed to build prompt", err)
	}
	return s.text(ctx, "summarize", generation.NewTextRequest(p))
}

func (s *studyServiceImpl) Quiz(ctx context.Context, in QuizInput) (*RecordsResult, error) {
	if err := domain.RequireText("topic", in.Topic); err != nil {
		return nil, err
	}
	count, err := domain.QuizCount(in.Count)
	if err != nil {
		return nil, err
	}
	p, err := prompt.Quiz(in.Topic, count, in.Difficulty)
	if err != nil {
		return nil, NewStudyServiceError("quiz", "failed to build prompt", err)
	}
	return s.records(ctx, "quiz", p, parser.QuizSchema)
}

func (s *studyServiceImpl) Flashcards(ctx context.Context, in FlashcardsInput) (*RecordsResult, error) {
	if err := domain.RequireText("topic", in.Topic); err != nil {
		return nil, err
	}
	count, err := domain.FlashcardCount(in.Count)
	if err != nil {
		return nil, err
	}
	p, err := prompt.Flashcards(in.Topic, count)
	if err != nil {
		return nil, NewStudyServiceError("flashcards", "failed to build prompt", err)
	}
	return s.records(ctx, "flashcards", p, parser.FlashcardSchema(in.Topic))
}

func (s *studyServiceImpl) AnalyzeDocument(ctx context.Context, in AnalyzeDocumentInput) (*TextResult, error) {
	if err := domain.RequireText("content", in.Content); err != nil {
		return nil, err
	}
	p, err := prompt.AnalyzeDocument(in.Content, in.Type)
	if err != nil {
		return nil, NewStudyServiceError("analyze_document", "failed to build prompt", err)
	}
	return s.text(ctx, "analyze_document", generation.NewTextRequest(p))
}

func (s *studyServiceImpl) DocumentChat(ctx context.Context, in DocumentChatInput) (*TextResult, error) {
	if err := domain.RequireText("content", in.Content); err != nil {
		return nil, err
	}
	if err := domain.RequireText("question", in.Question); err != nil {
		return nil, err
	}
	p, err := prompt.DocumentChat(in.Content, in.Question, in.Socratic)
	if err != nil {
		return nil, NewStudyServiceError("document_chat", "failed to build prompt", err)
	}
	return s.text(ctx, "document_chat", generation.NewTextRequest(p))
}

func (s *studyServiceImpl) Mnemonic(ctx context.Context, in MnemonicInput) (*TextResult, error) {
	if err := domain.RequireText("concept", in.Concept); err != nil {
		return nil, err
	}
	p, err := prompt.Mnemonic(in.Concept, in.Type)
	if err != nil {
		return nil, NewStudyServiceError("mnemonic", "failed to build prompt", err)
	}
	return s.text(ctx, "mnemonic", generation.NewTextRequest(p))
}

func (s *studyServiceImpl) Story(ctx context.Context, in StoryInput) (*TextResult, error) {
	if err := domain.RequireText("topic", in.Topic); err != nil {
		return nil, err
	}
	p, err := prompt.Story(in.Topic, in.Style, in.Audience)
	if err != nil {
		return nil, NewStudyServiceError("story", "failed to build prompt", err)
	}
	return s.text(ctx, "story", generation.NewTextRequest(p))
}

// Providers reports the generator's tiers when it can describe them.
func (s *studyServiceImpl) Providers() generation.Status {
	if d, ok := s.generator.(Describer); ok {
		return d.Describe()
	}
	return generation.Status{}
}

func (s *studyServiceImpl) text(ctx context.Context, operation string, req generation.Request) (*TextResult, error) {
	outcome := s.generator.Generate(ctx, req)
	if !outcome.OK() {
		s.logFailure(ctx, operation, outcome)
		return nil, outcome.Failure
	}
	return &TextResult{
		Text:     outcome.Success.Text,
		Provider: outcome.Success.Provider,
		Model:    outcome.Success.Model,
	}, nil
}

func (s *studyServiceImpl) records(
	ctx context.Context,
	operation string,
	p string,
	schema parser.Schema,
) (*RecordsResult, error) {
	outcome := s.generator.Generate(ctx, generation.NewJSONArrayRequest(p))
	if !outcome.OK() {
		s.logFailure(ctx, operation, outcome)
		return nil, outcome.Failure
	}

	parsed := parser.Parse(outcome.Success.Text, schema)
	if parsed.Degraded {
		logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "completion was not a JSON array, returning degraded record",
			slog.String("operation", operation),
			slog.String("schema", schema.Name),
			slog.String("provider", outcome.Success.Provider),
			slog.String("model", outcome.Success.Model))
	}

	return &RecordsResult{
		Records:  parsed.Records,
		Degraded: parsed.Degraded,
		Raw:      parsed.Raw,
		Provider: outcome.Success.Provider,
		Model:    outcome.Success.Model,
	}, nil
}

func (s *studyServiceImpl) logFailure(ctx context.Context, operation string, outcome generation.Outcome) {
	logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "study request failed",
		slog.String("operation", operation),
		slog.Int("attempts", outcome.Attempts),
		slog.Any("providers", outcome.Failure.Providers()))
}
