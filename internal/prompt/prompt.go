// Package prompt turns each study feature's parameters into the single
// natural-language prompt sent to a provider. Builders are pure: the same
// inputs always produce the same prompt, and free-text parameters are
// interpolated verbatim.
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/omnistudy/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

const (
	socraticInstruction = "You are a Socratic Tutor. Never give the direct answer. Ask guiding questions."
	directInstruction   = "You are a helpful, direct study buddy."

	// cleanTextInstruction keeps chat answers readable as plain text.
	cleanTextInstruction = "IMPORTANT: Do not use Markdown symbols like #, *, **, or _ in your response. " +
		"Do not use labels like \"The Text:\", \"The Explanation:\", or \"Explanation:\". " +
		"Present information in a clean, natural reading style. " +
		"Use double line breaks between sections for clarity. " +
		"If you need to list items, use simple numbering like 1. 2. 3. without any special characters around the numbers."
)

var summaryDirectives = map[domain.SummaryLength]string{
	domain.SummaryBrief:    "Provide a very concise summary (2-3 sentences)",
	domain.SummaryMedium:   "Provide a moderate summary (1-2 paragraphs)",
	domain.SummaryDetailed: "Provide a detailed summary (3-4 paragraphs)",
}

var analysisDirectives = map[domain.AnalysisType]string{
	domain.AnalysisSummary:        "Provide a comprehensive summary of:",
	domain.AnalysisKeyPoints:      "List the main key points from:",
	domain.AnalysisQuizGeneration: "Generate 5 quiz questions based on:",
	domain.AnalysisExplanation:    "Explain the concepts in:",
}

var mnemonicDirectives = map[domain.MnemonicType]string{
	domain.MnemonicAcronym:     "Create an acronym mnemonic for remembering:",
	domain.MnemonicLoci:        "Create a Method of Loci (memory palace) for:",
	domain.MnemonicRhyme:       "Create a rhyming mnemonic for:",
	domain.MnemonicStory:       "Create a memorable story to remember:",
	domain.MnemonicAssociation: "Create word associations to remember:",
}

func tutorInstruction(socratic bool) string {
	if socratic {
		return socraticInstruction
	}
	return directInstruction
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", name, err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Explain asks for an explanation of concept, either directly or as a
// Socratic tutor that only asks guiding questions.
func Explain(concept string, socratic bool) (string, error) {
	return render("explain", struct {
		Instruction string
		Concept     string
	}{tutorInstruction(socratic), concept})
}

// Summarize asks for a summary of text at the given length. Unknown lengths
// use a generic instruction.
func Summarize(text string, length domain.SummaryLength) (string, error) {
	directive, ok := summaryDirectives[length.OrDefault()]
	if !ok {
		directive = "Summarize"
	}
	return render("summarize", struct {
		Directive string
		Text      string
	}{directive, text})
}

// Quiz asks for count multiple-choice questions as a JSON array of
// objects with question, options, correct and explanation fields.
func Quiz(topic string, count int, difficulty domain.Difficulty) (string, error) {
	return render("quiz", struct {
		Topic      string
		Count      int
		Difficulty domain.Difficulty
	}{topic, count, difficulty.OrDefault()})
}

// Flashcards asks for count flashcards as a JSON array of front/back objects.
func Flashcards(topic string, count int) (string, error) {
	return render("flashcards", struct {
		Topic string
		Count int
	}{topic, count})
}

// AnalyzeDocument asks for one kind of analysis of document content.
func AnalyzeDocument(content string, kind domain.AnalysisType) (string, error) {
	directive, ok := analysisDirectives[kind.OrDefault()]
	if !ok {
		directive = "Analyze:"
	}
	return render("analyze", struct {
		Directive string
		Content   string
	}{directive, content})
}

// DocumentChat asks a question grounded in an uploaded document.
func DocumentChat(content, question string, socratic bool) (string, error) {
	return render("document_chat", struct {
		Instruction string
		CleanText   string
		Content     string
		Question    string
	}{tutorInstruction(socratic), cleanTextInstruction, content, question})
}

// Mnemonic asks for a memory aid of the given technique.
func Mnemonic(concept string, kind domain.MnemonicType) (string, error) {
	directive, ok := mnemonicDirectives[kind.OrDefault()]
	if !ok {
		directive = "Create a mnemonic for:"
	}
	return render("mnemonic", struct {
		Directive string
		Concept   string
	}{directive, concept})
}

// Story asks for a short story that teaches topic.
func Story(topic string, style domain.StoryStyle, audience domain.Audience) (string, error) {
	return render("story", struct {
		Topic    string
		Style    domain.StoryStyle
		Audience domain.Audience
	}{topic, style.OrDefault(), audience.OrDefault()})
}
