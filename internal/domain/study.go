package domain

import (
	"fmt"
	"strings"
)

// SummaryLength selects how long a summary should be.
type SummaryLength string

// Summary lengths.
const (
	SummaryBrief    SummaryLength = "Brief"
	SummaryMedium   SummaryLength = "Medium"
	SummaryDetailed SummaryLength = "Detailed"
)

// Difficulty is a quiz difficulty level.
type Difficulty string

// Quiz difficulties.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AnalysisType selects what a document analysis produces.
type AnalysisType string

// Document analysis types.
const (
	AnalysisSummary        AnalysisType = "Summary"
	AnalysisKeyPoints      AnalysisType = "Key Points"
	AnalysisQuizGeneration AnalysisType = "Quiz Generation"
	AnalysisExplanation    AnalysisType = "Explanation"
)

// MnemonicType is a memory technique.
type MnemonicType string

// Mnemonic techniques.
const (
	MnemonicAcronym     MnemonicType = "Acronym"
	MnemonicLoci        MnemonicType = "Method of Loci"
	MnemonicRhyme       MnemonicType = "Rhyme"
	MnemonicStory       MnemonicType = "Story"
	MnemonicAssociation MnemonicType = "Association"
)

// StoryStyle is the genre of a generated story.
type StoryStyle string

// Story styles.
const (
	StyleEducational StoryStyle = "Educational"
	StyleAdventure   StoryStyle = "Adventure"
	StyleMystery     StoryStyle = "Mystery"
	StyleFantasy     StoryStyle = "Fantasy"
	StyleHistorical  StoryStyle = "Historical"
)

// Audience is who a story is written for.
type Audience string

// Story audiences.
const (
	AudienceKids          Audience = "Kids"
	AudienceTeens         Audience = "Teens"
	AudienceAdults        Audience = "Adults"
	AudienceProfessionals Audience = "Professionals"
)

// Count bounds and defaults for structured features.
const (
	MinQuizQuestions     = 1
	MaxQuizQuestions     = 10
	DefaultQuizQuestions = 5

	MinFlashcards     = 5
	MaxFlashcards     = 50
	DefaultFlashcards = 10
)

// OrDefault returns l, or SummaryMedium when l is empty.
func (l SummaryLength) OrDefault() SummaryLength {
	if l == "" {
		return SummaryMedium
	}
	return l
}

// OrDefault returns d, or DifficultyMedium when d is empty.
func (d Difficulty) OrDefault() Difficulty {
	if d == "" {
		return DifficultyMedium
	}
	return d
}

// OrDefault returns a, or AnalysisSummary when a is empty.
func (a AnalysisType) OrDefault() AnalysisType {
	if a == "" {
		return AnalysisSummary
	}
	return a
}

// OrDefault returns m, or MnemonicAcronym when m is empty.
func (m MnemonicType) OrDefault() MnemonicType {
	if m == "" {
		return MnemonicAcronym
	}
	return m
}

// OrDefault returns s, or StyleEducational when s is empty.
func (s StoryStyle) OrDefault() StoryStyle {
	if s == "" {
		return StyleEducational
	}
	return s
}

// OrDefault returns a, or AudienceAdults when a is empty.
func (a Audience) OrDefault() Audience {
	if a == "" {
		return AudienceAdults
	}
	return a
}

// QuizCount applies the default and bounds for the number of quiz questions.
func QuizCount(n int) (int, error) {
	return boundedCount("count", n, DefaultQuizQuestions, MinQuizQuestions, MaxQuizQuestions)
}

// FlashcardCount applies the default and bounds for the number of flashcards.
func FlashcardCount(n int) (int, error) {
	return boundedCount("count", n, DefaultFlashcards, MinFlashcards, MaxFlashcards)
}

func boundedCount(field string, n, def, lo, hi int) (int, error) {
	if n == 0 {
		return def, nil
	}
	if n < lo || n > hi {
		return 0, NewValidationError(field, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
	return n, nil
}

// RequireText returns ErrEmptyContent wrapped with field when s is blank.
func RequireText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s: %w", field, ErrEmptyContent)
	}
	return nil
}
