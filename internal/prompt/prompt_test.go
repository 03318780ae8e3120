package prompt

import (
	"strings"
	"testing"

	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	direct, err := Explain("photosynthesis", false)
	require.NoError(t, err)
	assert.Equal(t, "You are a helpful, direct study buddy.\n\nExplain this concept clearly:\nphotosynthesis", direct)

	socratic, err := Explain("photosynthesis", true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(socratic, "You are a Socratic Tutor. Never give the direct answer."))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		length domain.SummaryLength
		prefix string
	}{
		{domain.SummaryBrief, "Provide a very concise summary (2-3 sentences) of the following text:"},
		{"", "Provide a moderate summary (1-2 paragraphs) of the following text:"},
		{domain.SummaryDetailed, "Provide a detailed summary (3-4 paragraphs) of the following text:"},
		{"Haiku", "Summarize of the following text:"},
	}

	for _, tc := range tests {
		t.Run(string(tc.length), func(t *testing.T) {
			p, err := Summarize("The mitochondria is the powerhouse.", tc.length)
			require.NoError(t, err)
			assert.Equal(t, tc.prefix+"\n\nThe mitochondria is the powerhouse.", p)
		})
	}
}

func TestQuizRequestsJSONArray(t *testing.T) {
	p, err := Quiz("World War II", 3, "")
	require.NoError(t, err)

	assert.Contains(t, p, `Generate 3 multiple-choice quiz questions about "World War II" at Medium difficulty.`)
	assert.Contains(t, p, "Return ONLY a valid JSON array.")
	for _, field := range []string{`"question"`, `"options" (array of 4 strings)`, `"correct" (letter A-D)`, `"explanation"`} {
		assert.Contains(t, p, field)
	}
	assert.True(t, strings.HasSuffix(p, "Do not include any text before or after the JSON array."))
}

func TestFlashcards(t *testing.T) {
	p, err := Flashcards("Cell biology", 12)
	require.NoError(t, err)
	assert.Contains(t, p, `Generate 12 flashcards for studying "Cell biology".`)
	assert.Contains(t, p, `"front" (question) and "back" (answer)`)
}

func TestAnalyzeDocument(t *testing.T) {
	tests := []struct {
		kind     domain.AnalysisType
		expected string
	}{
		{domain.AnalysisKeyPoints, "List the main key points from:\n\nnotes"},
		{"", "Provide a comprehensive summary of:\n\nnotes"},
		{domain.AnalysisQuizGeneration, "Generate 5 quiz questions based on:\n\nnotes"},
		{domain.AnalysisExplanation, "Explain the concepts in:\n\nnotes"},
		{"Unknown", "Analyze:\n\nnotes"},
	}

	for _, tc := range tests {
		p, err := AnalyzeDocument("notes", tc.kind)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, p)
	}
}

func TestDocumentChat(t *testing.T) {
	p, err := DocumentChat("Chapter 1: Cells.", "What is a cell?", false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p, "You are a helpful, direct study buddy. Base your responses strictly"))
	assert.Contains(t, p, "Do not use Markdown symbols")
	assert.Contains(t, p, "CONTEXT FROM DOCUMENT:\nChapter 1: Cells.")
	assert.True(t, strings.HasSuffix(p, "USER QUESTION: What is a cell?"))
}

func TestMnemonic(t *testing.T) {
	p, err := Mnemonic("planets in order", domain.MnemonicLoci)
	require.NoError(t, err)
	assert.Equal(t, "Create a Method of Loci (memory palace) for: planets in order", p)

	p, err = Mnemonic("planets in order", "")
	require.NoError(t, err)
	assert.Equal(t, "Create an acronym mnemonic for remembering: planets in order", p)

	p, err = Mnemonic("planets in order", "Song")
	require.NoError(t, err)
	assert.Equal(t, "Create a mnemonic for: planets in order", p)
}

func TestStory(t *testing.T) {
	p, err := Story("gravity", domain.StyleMystery, domain.AudienceKids)
	require.NoError(t, err)
	assert.Equal(t, "Write a Mystery story about gravity for Kids. Make it engaging and educational.", p)

	p, err = Story("gravity", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Write a Educational story about gravity for Adults. Make it engaging and educational.", p)
}

func TestFreeTextIsInterpolatedVerbatim(t *testing.T) {
	input := `<b>"quotes" & {{.Braces}}</b>`
	p, err := Explain(input, false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, input))
}

func TestBuildersAreDeterministic(t *testing.T) {
	a, err := Quiz("topic", 5, domain.DifficultyHard)
	require.NoError(t, err)
	b, err := Quiz("topic", 5, domain.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
