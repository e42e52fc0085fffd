package admin

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
)

// ExportUsersCSV streams all users as CSV.
func (s *Service) ExportUsersCSV(ctx context.Context, w io.Writer) error {
	var users []models.UserModel
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "email", "role", "status", "verified", "createdAt"}); err != nil {
		return err
	}
	for _, u := range users {
		row := []string{
			u.ID, u.Name, u.Email, u.Role, u.Status,
			strconv.FormatBool(u.IsVerified),
			u.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSummariesCSV streams summary metadata as CSV. The source text is
// omitted; it can be megabytes per row.
func (s *Service) ExportSummariesCSV(ctx context.Context, w io.Writer) error {
	var summaries []models.SummaryModel
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&summaries).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "user", "inputType", "inputFileName", "type", "length", "focus", "createdAt"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range summaries {
		row := []string{
			m.ID, m.UserID, m.InputType, m.InputFileName,
			m.Options.Type, m.Options.Length, m.Options.Focus,
			m.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
