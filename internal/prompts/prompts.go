// Package prompts builds the three LLM prompts of the processing pipeline.
// Extracted page text and resume text are capped before interpolation to
// bound prompt size.
package prompts

import "fmt"

// Truncation caps, in runes.
const (
	// OCRTextCap bounds extracted page text in the resume and cover-letter
	// prompts.
	OCRTextCap = 2000
	// ResumeCap bounds resume text in the cover-letter and questions prompts.
	ResumeCap = 1000
)

// Truncate returns s capped at limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

const tailoredResumeTemplate = `Based on this job posting and my current resume, create a tailored version that highlights relevant skills and experience.

Job Title: %s
Company: %s
Job Description (from page text): %s

My Current Resume:
%s

Please provide a tailored resume that emphasizes the most relevant qualifications for this specific role.`

// TailoredResume builds the first pipeline prompt. The resume is passed in
// full; the page text is capped.
func TailoredResume(title, company, pageText, resume string) string {
	return fmt.Sprintf(tailoredResumeTemplate, title, company, Truncate(pageText, OCRTextCap), resume)
}

const coverLetterTemplate = `Write a professional cover letter for this job application.

Job Title: %s
Company: %s
Job Description (from page text): %s

My Resume: %s

Create a compelling cover letter that shows enthusiasm for the role and highlights how my experience matches their needs.`

// CoverLetter builds the second pipeline prompt. Both inputs are capped.
func CoverLetter(title, company, pageText, resume string) string {
	return fmt.Sprintf(coverLetterTemplate, title, company, Truncate(pageText, OCRTextCap), Truncate(resume, ResumeCap))
}

const questionsTemplate = `Analyze this job application page content and identify any application questions that might need to be answered.

Page Content: %s

For each question you identify, provide a professional answer based on this resume: %s

Format your response as JSON with this structure:
[
  {
    "question": "Question text here",
    "answer": "Your answer here"
  }
]

If no questions are found, return an empty array.`

// Questions builds the third pipeline prompt. The page text is passed in
// full so no question is cut off; the resume is capped.
func Questions(pageText, resume string) string {
	return fmt.Sprintf(questionsTemplate, pageText, Truncate(resume, ResumeCap))
}
