package types

// ResumeParseRequest carries pasted resume text (plain text or LaTeX).
type ResumeParseRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

// ResumeParseResult is the structured profile extracted from a resume.
type ResumeParseResult struct {
	ParsedData ProfileInput `json:"parsed_data"`
	Message    string       `json:"message"`
}
