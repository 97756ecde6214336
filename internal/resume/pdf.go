package resume

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of every page of a PDF document.
func ExtractPDFText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ParseError{Message: "PDF file is empty"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Message: "failed to open PDF", Cause: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ParseError{Message: "failed to extract PDF text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := CleanText(buf.String())
	if text == "" {
		return "", &ParseError{Message: "PDF contains no extractable text"}
	}
	return text, nil
}
