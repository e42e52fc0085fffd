package history

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/pagination"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

// ErrNotFound covers both missing records and records owned by someone else;
// callers cannot tell the two apart.
var ErrNotFound = errors.New("summary not found")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the user's summaries newest first.
func (s *Service) List(ctx context.Context, userID string, q pagination.Query) ([]models.SummaryModel, response.Pagination, error) {
	query := s.db.WithContext(ctx).
		Model(&models.SummaryModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	var items []models.SummaryModel
	page, err := pagination.Paginate(query, q, &items)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return items, page, nil
}

// GetByID returns one summary if it belongs to the user.
func (s *Service) GetByID(ctx context.Context, userID, id string) (*models.SummaryModel, error) {
	var record models.SummaryModel
	err := s.db.WithContext(ctx).
		First(&record, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes one summary if it belongs to the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).
		Delete(&models.SummaryModel{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
