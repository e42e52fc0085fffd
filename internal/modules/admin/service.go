package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/jwt"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/pagination"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

const impersonateTTL = time.Hour

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListUsers returns users filtered by search text, role and status.
func (s *Service) ListUsers(ctx context.Context, q ListUsersQuery, page pagination.Query) ([]models.UserModel, response.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.UserModel{}).Order("created_at DESC")

	if search := strings.TrimSpace(q.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var users []models.UserModel
	meta, err := pagination.Paginate(query, page, &users)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return users, meta, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser changes name, email or role. Demoting the last admin is refused.
func (s *Service) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.UserModel, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		updates["email"] = email
	}
	if req.Role == models.RoleUser || req.Role == models.RoleAdmin {
		if user.Role == models.RoleAdmin && req.Role == models.RoleUser {
			if err := s.ensureAnotherAdmin(ctx, id); err != nil {
				return nil, err
			}
		}
		updates["role"] = req.Role
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetUser(ctx, id)
}

// ChangeStatus bans or reactivates a user.
func (s *Service) ChangeStatus(ctx context.Context, id, status string) (*models.UserModel, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin && status == models.StatusBanned {
		if err := s.ensureAnotherAdmin(ctx, id); err != nil {
			return nil, err
		}
	}
	if err := s.db.WithContext(ctx).Model(user).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user and all of their summaries.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx, id); err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SummaryModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserModel{}, "id = ?", id).Error
	})
}

// Impersonate issues a short-lived token for the given user so an admin can
// reproduce what that user sees.
func (s *Service) Impersonate(ctx context.Context, id string) (string, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return "", err
	}
	return jwt.Sign(id, impersonateTTL)
}

// Metrics builds the dashboard snapshot. Daily buckets are computed in Go so
// the query stays portable across dialects.
func (s *Service) Metrics(ctx context.Context) (*Metrics, error) {
	m := &Metrics{Summaries: SummaryStats{ByType: map[string]int64{}}}

	users := s.db.WithContext(ctx).Model(&models.UserModel{})
	if err := users.Count(&m.Users.Total).Error; err != nil {
		return nil, err
	}
	counts := []struct {
		field string
		value string
		dst   *int64
	}{
		{"status", models.StatusActive, &m.Users.Active},
		{"status", models.StatusBanned, &m.Users.Banned},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
			Where(c.field+" = ?", c.value).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("is_verified = ?", true).Count(&m.Users.Verified).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).
		Count(&m.Summaries.Total).Error; err != nil {
		return nil, err
	}
	var typeRows []struct {
		InputType string
		N         int64
	}
	if err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).
		Select("input_type, COUNT(*) AS n").Group("input_type").
		Scan(&typeRows).Error; err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		m.Summaries.ByType[row.InputType] = row.N
	}

	series, err := s.dailySummaryCounts(ctx, 7)
	if err != nil {
		return nil, err
	}
	m.Last7Days = series
	return m, nil
}

// UserActivity returns registrations per day for the last `days` days.
func (s *Service) UserActivity(ctx context.Context, days int) ([]DayCount, error) {
	var rows []struct{ CreatedAt time.Time }
	since := dayStart(time.Now()).AddDate(0, 0, -(days - 1))
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Select("created_at").Where("created_at >= ?", since).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	times := make([]time.Time, len(rows))
	for i, r := range rows {
		times[i] = r.CreatedAt
	}
	return bucketByDay(times, days), nil
}

// SummaryTrends returns summaries created per day for the last `days`
// days, with per-style and per-length breakdowns in each bucket.
func (s *Service) SummaryTrends(ctx context.Context, days int) ([]TrendBucket, error) {
	var rows []struct {
		CreatedAt time.Time
		Style     string
		Length    string
	}
	since := dayStart(time.Now()).AddDate(0, 0, -(days - 1))
	if err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).
		Select("created_at, option_type AS style, option_length AS length").
		Where("created_at >= ?", since).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	start := dayStart(time.Now()).AddDate(0, 0, -(days - 1))
	out := make([]TrendBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out[i] = TrendBucket{
			Date:     date,
			ByStyle:  map[string]int64{},
			ByLength: map[string]int64{},
		}
		index[date] = i
	}
	for _, r := range rows {
		i, ok := index[r.CreatedAt.Local().Format("2006-01-02")]
		if !ok {
			continue
		}
		out[i].Count++
		out[i].ByStyle[r.Style]++
		out[i].ByLength[r.Length]++
	}
	return out, nil
}

func (s *Service) dailySummaryCounts(ctx context.Context, days int) ([]DayCount, error) {
	var rows []struct{ CreatedAt time.Time }
	since := dayStart(time.Now()).AddDate(0, 0, -(days - 1))
	if err := s.db.WithContext(ctx).Model(&models.SummaryModel{}).
		Select("created_at").Where("created_at >= ?", since).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	times := make([]time.Time, len(rows))
	for i, r := range rows {
		times[i] = r.CreatedAt
	}
	return bucketByDay(times, days), nil
}

func (s *Service) ensureAnotherAdmin(ctx context.Context, excludeID string) error {
	var admins int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("role = ? AND id <> ? AND status = ?", models.RoleAdmin, excludeID, models.StatusActive).
		Count(&admins).Error; err != nil {
		return err
	}
	if admins == 0 {
		return ErrLastAdmin
	}
	return nil
}

// bucketByDay zero-fills a daily series ending today.
func bucketByDay(times []time.Time, days int) []DayCount {
	start := dayStart(time.Now()).AddDate(0, 0, -(days - 1))

	out := make([]DayCount, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out[i] = DayCount{Date: date}
		index[date] = i
	}
	for _, t := range times {
		if i, ok := index[t.Local().Format("2006-01-02")]; ok {
			out[i].Count++
		}
	}
	return out
}

func dayStart(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
