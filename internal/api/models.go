package api

import (
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/parser"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`

	User *domain.User `json:"user"`
}

// ExplainRequest asks for an explanation of a concept.
type ExplainRequest struct {
	Concept  string `json:"concept"  validate:"required"`
	Socratic bool   `json:"socratic"`
	// Image is optional base64, raw or as a data URL
	Image string `json:"image,omitempty"`
}

// SummarizeRequest asks for a summary of text.
type SummarizeRequest struct {
	Text   string               `json:"text"   validate:"required"`
	Length domain.SummaryLength `json:"length" validate:"omitempty,oneof=Brief Medium Detailed"`
}

// QuizRequest asks for multiple-choice questions about a topic.
type QuizRequest struct {
	Topic      string            `json:"topic"      validate:"required"`
	Count      int               `json:"count"      validate:"omitempty,min=1,max=10"`
	Difficulty domain.Difficulty `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
}

// FlashcardsRequest asks for flashcards about a topic.
type FlashcardsRequest struct {
	Topic string `json:"topic" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=5,max=50"`
}

// AnalyzeDocumentRequest asks for an analysis of document content.
type AnalyzeDocumentRequest struct {
	Content string              `json:"content" validate:"required"`
	Type    domain.AnalysisType `json:"type"    validate:"omitempty,oneof=Summary 'Key Points' 'Quiz Generation' Explanation"`
}

// DocumentChatRequest asks a question about document content.
type DocumentChatRequest struct {
	Content  string `json:"content"  validate:"required"`
	Question string `json:"question" validate:"required"`
	Socratic bool   `json:"socratic"`
}

// MnemonicRequest asks for a memory aid.
type MnemonicRequest struct {
	Concept string              `json:"concept" validate:"required"`
	Type    domain.MnemonicType `json:"type"    validate:"omitempty,oneof=Acronym 'Method of Loci' Rhyme Story Association"`
}

// StoryRequest asks for an educational story.
type StoryRequest struct {
	Topic    string            `json:"topic"    validate:"required"`
	Style    domain.StoryStyle `json:"style"    validate:"omitempty,oneof=Educational Adventure Mystery Fantasy Historical"`
	Audience domain.Audience   `json:"audience" validate:"omitempty,oneof=Kids Teens Adults Professionals"`
}

// TextResponse is a free-form completion.
type TextResponse struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// RecordsResponse is a structured completion. Raw is only set when the
// completion could not be parsed and Records holds a placeholder.
type RecordsResponse struct {
	Records  []parser.Record `json:"records"`
	Degraded bool            `json:"degraded"`
	Raw      string          `json:"raw,omitempty"`
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
}
