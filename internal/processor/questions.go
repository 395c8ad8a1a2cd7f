package processor

import (
	"encoding/json"

	"github.com/applyflow/applyflow/internal/domain"
)

// ExtractJSONArray returns the first balanced bracket substring of s, aware
// of JSON strings and escape sequences so brackets inside quoted text do not
// affect the depth count. The boolean is false when no balanced array exists.
func ExtractJSONArray(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start == -1 {
			if r == '[' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseQuestions locates a JSON array of question/answer objects inside an
// LLM response, tolerating surrounding prose. Any parse failure yields an
// empty list; malformed model output never fails a job.
func ParseQuestions(response string) domain.QuestionList {
	raw, ok := ExtractJSONArray(response)
	if !ok {
		return domain.QuestionList{}
	}

	var questions domain.QuestionList
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return domain.QuestionList{}
	}
	if questions == nil {
		questions = domain.QuestionList{}
	}
	return questions
}
