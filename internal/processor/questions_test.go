package processor

import (
	"testing"

	"github.com/applyflow/applyflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare array",
			in:   `[{"question":"q","answer":"a"}]`,
			want: `[{"question":"q","answer":"a"}]`,
			ok:   true,
		},
		{
			name: "surrounded by prose",
			in:   "Here are the questions:\n[{\"question\":\"Why us?\",\"answer\":\"Because...\"}]\nHope that helps!",
			want: `[{"question":"Why us?","answer":"Because..."}]`,
			ok:   true,
		},
		{
			name: "nested arrays",
			in:   `text [1, [2, 3], 4] more`,
			want: `[1, [2, 3], 4]`,
			ok:   true,
		},
		{
			name: "bracket inside string",
			in:   `[{"question":"What does arr[0] mean?","answer":"first [element]"}]`,
			want: `[{"question":"What does arr[0] mean?","answer":"first [element]"}]`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			in:   `[{"question":"Say \"hi\"]","answer":"ok"}]`,
			want: `[{"question":"Say \"hi\"]","answer":"ok"}]`,
			ok:   true,
		},
		{
			name: "empty array",
			in:   "No questions found: []",
			want: "[]",
			ok:   true,
		},
		{
			name: "no array",
			in:   "There are no application questions on this page.",
			ok:   false,
		},
		{
			name: "unbalanced",
			in:   `[{"question":"q"`,
			ok:   false,
		},
		{
			name: "empty input",
			in:   "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONArray(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseQuestions(t *testing.T) {
	got := ParseQuestions("Here are the questions:\n[{\"question\":\"Why us?\",\"answer\":\"Because...\"}]")
	require.Len(t, got, 1)
	assert.Equal(t, domain.Question{Question: "Why us?", Answer: "Because..."}, got[0])
}

func TestParseQuestionsNoArray(t *testing.T) {
	got := ParseQuestions("no JSON here")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseQuestionsMalformedArray(t *testing.T) {
	got := ParseQuestions(`[{"question": 42, "answer": }]`)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseQuestionsPreservesOrder(t *testing.T) {
	got := ParseQuestions(`[
		{"question":"First?","answer":"1"},
		{"question":"Second?","answer":"2"},
		{"question":"Third?","answer":"3"}
	]`)
	require.Len(t, got, 3)
	assert.Equal(t, "First?", got[0].Question)
	assert.Equal(t, "Second?", got[1].Question)
	assert.Equal(t, "Third?", got[2].Question)
}
