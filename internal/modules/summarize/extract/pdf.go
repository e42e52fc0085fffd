package extract

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts plain text from PDF files on disk. The Parse hook exists so
// tests can substitute the underlying parser.
type PDF struct {
	Parse func(path string) (string, error)
}

func NewPDF() *PDF {
	return &PDF{Parse: parsePDF}
}

// ExtractFile reads the PDF at path and returns its text content.
func (p *PDF) ExtractFile(path string) (string, *Error) {
	raw, err := p.Parse(path)
	if err != nil {
		return "", newError(CodeUnreadableDocument, http.StatusUnprocessableEntity,
			"Could not read any text from the uploaded PDF.", err)
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", newError(CodeUnreadableDocument, http.StatusUnprocessableEntity,
			"Could not read any text from the uploaded PDF.", nil)
	}
	return text, nil
}

// parsePDF wraps the parser in a recover because malformed files can make it
// panic instead of returning an error.
func parsePDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", err
	}
	return buf.String(), nil
}
