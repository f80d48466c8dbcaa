package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOption(t *testing.T) {
	tests := []struct {
		in     string
		want   Option
		wantOK bool
	}{
		{"A", OptionA, true},
		{"b", OptionB, true},
		{" c ", OptionC, true},
		{"D", OptionD, true},
		{"E", "", false},
		{"", "", false},
		{"AB", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOption(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCorrectnessRatio(t *testing.T) {
	assert.Equal(t, 0.0, Question{}.CorrectnessRatio())
	assert.InDelta(t, 0.75, Question{TimesAnswered: 4, TimesCorrect: 3}.CorrectnessRatio(), 1e-9)
}

func TestIsCorrect_IgnoresCase(t *testing.T) {
	q := Question{CorrectAnswer: "B"}
	assert.True(t, q.IsCorrect("b"))
	assert.True(t, q.IsCorrect("B"))
	assert.False(t, q.IsCorrect("A"))
	assert.False(t, q.IsCorrect("x"))
}

func TestOptionTextAndTimesChosen(t *testing.T) {
	q := Question{
		OptionA: "one", OptionB: "two", OptionC: "three", OptionD: "four",
		TimesChosenA: 1, TimesChosenB: 2, TimesChosenC: 3, TimesChosenD: 4,
	}
	for i, o := range Options {
		assert.Equal(t, i+1, q.TimesChosen(o))
	}
	assert.Equal(t, "three", q.OptionText(OptionC))
	assert.Equal(t, "", q.OptionText("Z"))
}

func TestResetStats(t *testing.T) {
	q := Question{TimesAnswered: 5, TimesCorrect: 3, TimesChosenA: 5, TimesCorrectRecent: 2}
	q.ResetStats()
	assert.Equal(t, Question{}, q)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Question{TimesAnswered: 3, TimesCorrect: 2, TimesChosenA: 3, TimesCorrectRecent: 1}.Validate())
	assert.Error(t, Question{TimesAnswered: 1, TimesCorrect: 2}.Validate())
	assert.Error(t, Question{TimesAnswered: 1, TimesChosenA: 1, TimesChosenB: 1}.Validate())
	assert.Error(t, Question{TimesAnswered: -1}.Validate())
	assert.Error(t, Question{TimesAnswered: 1, TimesCorrectRecent: 2}.Validate())
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name    string
		in      Question
		want    Question
		changed bool
	}{
		{
			name: "consistent",
			in:   Question{TimesAnswered: 3, TimesCorrect: 2, TimesChosenA: 2, TimesChosenB: 1, TimesCorrectRecent: 1},
			want: Question{TimesAnswered: 3, TimesCorrect: 2, TimesChosenA: 2, TimesChosenB: 1, TimesCorrectRecent: 1},
		},
		{
			name:    "correct above answered",
			in:      Question{TimesCorrect: 3},
			want:    Question{},
			changed: true,
		},
		{
			name:    "negatives",
			in:      Question{TimesAnswered: -2, TimesChosenC: -1, TimesCorrectRecent: -4},
			want:    Question{},
			changed: true,
		},
		{
			name:    "picks trimmed from D",
			in:      Question{TimesAnswered: 2, TimesChosenA: 1, TimesChosenB: 1, TimesChosenD: 2, TimesCorrectRecent: 9},
			want:    Question{TimesAnswered: 2, TimesChosenA: 1, TimesChosenB: 1, TimesCorrectRecent: 2},
			changed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			assert.Equal(t, tt.changed, q.Repair())
			assert.Equal(t, tt.want, q)
			assert.NoError(t, q.Validate())
		})
	}
}
