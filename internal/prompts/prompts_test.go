package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abcde", 3))
	assert.Equal(t, "", Truncate("", 10))
	// Rune-aware, not byte-aware.
	assert.Equal(t, "héll", Truncate("héllo", 4))
}

func TestTailoredResumeCapsPageTextOnly(t *testing.T) {
	longPage := strings.Repeat("p", OCRTextCap+500)
	longResume := strings.Repeat("r", ResumeCap+500)

	prompt := TailoredResume("Backend Engineer", "Acme", longPage, longResume)

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Acme")
	assert.NotContains(t, prompt, strings.Repeat("p", OCRTextCap+1))
	// Resume goes in full for the tailoring prompt.
	assert.Contains(t, prompt, longResume)
}

func TestCoverLetterCapsBothInputs(t *testing.T) {
	longPage := strings.Repeat("p", OCRTextCap+500)
	longResume := strings.Repeat("r", ResumeCap+500)

	prompt := CoverLetter("Backend Engineer", "Acme", longPage, longResume)

	assert.NotContains(t, prompt, strings.Repeat("p", OCRTextCap+1))
	assert.NotContains(t, prompt, strings.Repeat("r", ResumeCap+1))
}

func TestQuestionsKeepsFullPageText(t *testing.T) {
	longPage := strings.Repeat("p", OCRTextCap+500)

	prompt := Questions(longPage, "resume")

	assert.Contains(t, prompt, longPage)
	assert.Contains(t, prompt, "empty array")
	assert.Contains(t, prompt, `"question"`)
}
