package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(int) (int, error)
		input   int
		want    int
		wantErr bool
	}{
		{"quiz default", QuizCount, 0, 5, false},
		{"quiz lower bound", QuizCount, 1, 1, false},
		{"quiz upper bound", QuizCount, 10, 10, false},
		{"quiz too many", QuizCount, 11, 0, true},
		{"quiz negative", QuizCount, -1, 0, true},
		{"flashcards default", FlashcardCount, 0, 10, false},
		{"flashcards lower bound", FlashcardCount, 5, 5, false},
		{"flashcards too few", FlashcardCount, 4, 0, true},
		{"flashcards too many", FlashcardCount, 51, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve))
				assert.Equal(t, "count", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEnumDefaults(t *testing.T) {
	assert.Equal(t, SummaryMedium, SummaryLength("").OrDefault())
	assert.Equal(t, SummaryBrief, SummaryBrief.OrDefault())
	assert.Equal(t, DifficultyMedium, Difficulty("").OrDefault())
	assert.Equal(t, AnalysisSummary, AnalysisType("").OrDefault())
	assert.Equal(t, MnemonicAcronym, MnemonicType("").OrDefault())
	assert.Equal(t, StyleEducational, StoryStyle("").OrDefault())
	assert.Equal(t, AudienceAdults, Audience("").OrDefault())
	assert.Equal(t, AudienceKids, AudienceKids.OrDefault())
}

func TestRequireText(t *testing.T) {
	assert.NoError(t, RequireText("concept", "osmosis"))

	err := RequireText("concept", "  \n")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Contains(t, err.Error(), "concept")
}
