package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/modules/summarize/extract"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/llm"
)

// Service runs the summarization pipeline: extract the source text, validate
// options, compose the prompt, call the model, persist the record.
type Service struct {
	db        *gorm.DB
	gen       llm.Generator
	logger    *zap.Logger
	pdf       *extract.PDF
	urlx      *extract.URL
	uploadDir string

	// removeFile is swappable so tests can count temp-file cleanup.
	removeFile func(string) error
}

func NewService(db *gorm.DB, gen llm.Generator, logger *zap.Logger, uploadDir string) *Service {
	return &Service{
		db:         db,
		gen:        gen,
		logger:     logger,
		pdf:        extract.NewPDF(),
		urlx:       extract.NewURL(nil),
		uploadDir:  uploadDir,
		removeFile: os.Remove,
	}
}

// SummarizeText summarizes pasted text.
func (s *Service) SummarizeText(ctx context.Context, userID string, req TextRequest) (*Result, error) {
	text, xerr := extract.Text(req.Text)
	if xerr != nil {
		return nil, stageFromExtract(xerr)
	}
	return s.complete(ctx, userID, pipelineInput{
		inputType: models.InputText,
		source:    text,
		stored:    text,
	}, req.SummaryOptions)
}

// SummarizeURL fetches the page and summarizes its readable article text.
// The stored input is the URL itself, not the extracted body.
func (s *Service) SummarizeURL(ctx context.Context, userID string, req URLRequest) (*Result, error) {
	target := strings.TrimSpace(req.URL)
	if target == "" {
		return nil, &StageError{
			Stage:   StageExtracting,
			Status:  http.StatusBadRequest,
			Message: "URL is required.",
		}
	}

	text, xerr := s.urlx.Extract(ctx, target)
	if xerr != nil {
		return nil, stageFromExtract(xerr)
	}

	return s.complete(ctx, userID, pipelineInput{
		inputType: models.InputURL,
		source:    text,
		stored:    target,
	}, req.SummaryOptions)
}

// SummarizePDF stores the upload in a temp file, extracts its text, runs the
// pipeline, and deletes the temp file exactly once no matter which step
// failed.
func (s *Service) SummarizePDF(ctx context.Context, userID string, fh *multipart.FileHeader, raw RawOptions) (*Result, error) {
	if fh == nil || fh.Size == 0 {
		return nil, &StageError{
			Stage:   StageExtracting,
			Status:  http.StatusBadRequest,
			Message: "A PDF file is required.",
		}
	}

	path, err := s.saveUpload(fh)
	if err != nil {
		return nil, &StageError{
			Stage:   StageExtracting,
			Status:  http.StatusInternalServerError,
			Message: "Could not store the uploaded file.",
			Err:     err,
		}
	}
	defer func() {
		if rmErr := s.removeFile(path); rmErr != nil {
			s.logger.Warn("failed to delete upload", zap.String("path", path), zap.Error(rmErr))
		}
	}()

	text, xerr := s.pdf.ExtractFile(path)
	if xerr != nil {
		return nil, stageFromExtract(xerr)
	}

	return s.complete(ctx, userID, pipelineInput{
		inputType: models.InputPDF,
		source:    text,
		stored:    text,
		fileName:  fh.Filename,
	}, raw)
}

// pipelineInput separates the text fed to the model from the value persisted
// as the record's input. For URLs the model sees the extracted article while
// the record keeps the URL.
type pipelineInput struct {
	inputType string
	source    string
	stored    string
	fileName  string
}

func (s *Service) complete(ctx context.Context, userID string, in pipelineInput, raw RawOptions) (*Result, error) {
	opts, err := ParseOptions(raw.Type, raw.Length, raw.Focus)
	if err != nil {
		var ioe *InvalidOptionError
		msg := "Invalid summary options."
		if errors.As(err, &ioe) {
			msg = fmt.Sprintf("Invalid summary option %q: %q is not supported.", ioe.Field, ioe.Value)
		}
		return nil, &StageError{
			Stage:   StageValidating,
			Status:  http.StatusBadRequest,
			Message: msg,
			Err:     err,
		}
	}

	prompt, budget := Compose(in.source, opts)

	summary, err := s.gen.Generate(ctx, llm.Request{
		System:      SystemPrompt,
		Prompt:      prompt,
		MaxTokens:   budget,
		Temperature: Temperature,
	})
	if err != nil {
		return nil, generationError(err)
	}

	record := &models.SummaryModel{
		UserID:        userID,
		InputType:     in.inputType,
		Input:         in.stored,
		InputFileName: in.fileName,
		Options: models.SummaryOptions{
			Type:   string(opts.Style),
			Length: string(opts.Length),
			Focus:  strings.TrimSpace(opts.Focus),
		},
		Summary: summary,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, persistError(err)
	}

	s.logger.Info("summary created",
		zap.String("id", record.ID),
		zap.String("user", userID),
		zap.String("inputType", in.inputType),
		zap.String("length", string(opts.Length)),
	)
	return &Result{Summary: summary, ID: record.ID, Record: record}, nil
}

func (s *Service) saveUpload(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(s.uploadDir, uuid.NewString()+".pdf")
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		s.removeFileQuiet(path)
		return "", err
	}
	return path, nil
}

func (s *Service) removeFileQuiet(path string) {
	if err := s.removeFile(path); err != nil {
		s.logger.Warn("failed to delete upload", zap.String("path", path), zap.Error(err))
	}
}

func stageFromExtract(e *extract.Error) *StageError {
	return &StageError{
		Stage:   StageExtracting,
		Status:  e.Status,
		Message: e.Message,
		Err:     e,
	}
}

func generationError(err error) *StageError {
	status := http.StatusBadGateway
	msg := "The summarization service is currently unavailable."

	var lerr *llm.Error
	if errors.As(err, &lerr) {
		switch lerr.Kind {
		case llm.KindQuotaExceeded:
			status = http.StatusServiceUnavailable
			msg = "The summarization service is over capacity. Try again later."
		case llm.KindMalformedResponse:
			msg = "The summarization service returned an unusable response."
		}
	}
	return &StageError{Stage: StageGenerating, Status: status, Message: msg, Err: err}
}

func persistError(err error) *StageError {
	return &StageError{
		Stage:   StagePersisting,
		Status:  http.StatusInternalServerError,
		Message: "Could not save the summary.",
		Err:     err,
	}
}
