package summarize

import (
	"fmt"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
)

// Stage names the pipeline step a summarization request was in when it
// failed. Every request walks the stages in order.
type Stage string

const (
	StageExtracting Stage = "extracting"
	StageValidating Stage = "validating"
	StageComposing  Stage = "composing"
	StageGenerating Stage = "generating"
	StagePersisting Stage = "persisting"
)

// StageError tags a pipeline failure with the stage it happened in and the
// HTTP status the handler should answer with.
type StageError struct {
	Stage   Stage
	Status  int
	Message string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error { return e.Err }

// TextRequest is the POST /api/summarize/text body.
type TextRequest struct {
	Text           string     `json:"text"`
	SummaryOptions RawOptions `json:"summaryOptions"`
}

// URLRequest is the POST /api/summarize/url body.
type URLRequest struct {
	URL            string     `json:"url"`
	SummaryOptions RawOptions `json:"summaryOptions"`
}

// RawOptions carries the option strings exactly as the client sent them;
// validation happens in ParseOptions.
type RawOptions struct {
	Type   string `json:"type"`
	Length string `json:"length"`
	Focus  string `json:"focus"`
}

// Result is the successful summarization response payload. The full
// record stays server-side; clients get the summary and the record id.
type Result struct {
	Summary string               `json:"summary"`
	ID      string               `json:"id"`
	Record  *models.SummaryModel `json:"-"`
}
