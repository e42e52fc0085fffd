package admin

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/database"
	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/jwt"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/pagination"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	jwt.SetSecret("admin-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewService(db), db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.UserModel {
	t.Helper()
	u := &models.UserModel{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Status:       models.StatusActive,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedUserSummary(t *testing.T, db *gorm.DB, userID, inputType string) {
	t.Helper()
	require.NoError(t, db.Create(&models.SummaryModel{
		UserID:    userID,
		InputType: inputType,
		Input:     "source",
		Options:   models.SummaryOptions{Type: "abstractive", Length: "medium"},
		Summary:   "result",
	}).Error)
}

func TestListUsersFilters(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "Alice Admin", "alice@example.com", models.RoleAdmin)
	bob := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	seedUser(t, db, "Carol", "carol@example.com", models.RoleUser)

	require.NoError(t, db.Model(bob).Update("status", models.StatusBanned).Error)

	page := pagination.Query{Page: 1, Size: 20}

	users, _, err := svc.ListUsers(context.Background(), ListUsersQuery{Role: models.RoleAdmin}, page)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)

	users, _, err = svc.ListUsers(context.Background(), ListUsersQuery{Status: models.StatusBanned}, page)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob@example.com", users[0].Email)

	users, meta, err := svc.ListUsers(context.Background(), ListUsersQuery{Search: "caro"}, page)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol@example.com", users[0].Email)
	assert.Equal(t, int64(1), meta.Total)
}

func TestChangeStatusBansUser(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	updated, err := svc.ChangeStatus(context.Background(), user.ID, models.StatusBanned)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBanned, updated.Status)

	updated, err = svc.ChangeStatus(context.Background(), user.ID, models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)
}

func TestLastAdminIsProtected(t *testing.T) {
	svc, db := newTestService(t)
	admin := seedUser(t, db, "Alice", "alice@example.com", models.RoleAdmin)

	_, err := svc.ChangeStatus(context.Background(), admin.ID, models.StatusBanned)
	assert.ErrorIs(t, err, ErrLastAdmin)

	_, err = svc.UpdateUser(context.Background(), admin.ID, UpdateUserRequest{Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrLastAdmin)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), admin.ID), ErrLastAdmin)

	// with a second admin present the first can be demoted
	seedUser(t, db, "Backup", "backup@example.com", models.RoleAdmin)
	updated, err := svc.UpdateUser(context.Background(), admin.ID, UpdateUserRequest{Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, updated.Role)
}

func TestDeleteUserRemovesSummaries(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	seedUserSummary(t, db, user.ID, models.InputText)
	seedUserSummary(t, db, user.ID, models.InputURL)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	var users, summaries int64
	require.NoError(t, db.Model(&models.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.SummaryModel{}).Count(&summaries).Error)
	assert.Zero(t, users)
	assert.Zero(t, summaries)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), user.ID), ErrUserNotFound)
}

func TestImpersonateIssuesTokenForUser(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	token, err := svc.Impersonate(context.Background(), user.ID)
	require.NoError(t, err)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = svc.Impersonate(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMetrics(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "Alice", "alice@example.com", models.RoleAdmin)
	bob := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	require.NoError(t, db.Model(bob).Update("status", models.StatusBanned).Error)

	seedUserSummary(t, db, alice.ID, models.InputText)
	seedUserSummary(t, db, alice.ID, models.InputText)
	seedUserSummary(t, db, alice.ID, models.InputPDF)

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), m.Users.Total)
	assert.Equal(t, int64(1), m.Users.Active)
	assert.Equal(t, int64(1), m.Users.Banned)
	assert.Equal(t, int64(2), m.Users.Verified)

	assert.Equal(t, int64(3), m.Summaries.Total)
	assert.Equal(t, int64(2), m.Summaries.ByType[models.InputText])
	assert.Equal(t, int64(1), m.Summaries.ByType[models.InputPDF])

	// zero-filled series ending today
	require.Len(t, m.Last7Days, 7)
	var total int64
	for _, day := range m.Last7Days {
		assert.NotEmpty(t, day.Date)
		total += day.Count
	}
	assert.Equal(t, int64(3), total)
}

func TestSummaryTrendsBreaksDownByOption(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	seedUserSummary(t, db, user.ID, models.InputText)
	seedUserSummary(t, db, user.ID, models.InputText)
	require.NoError(t, db.Create(&models.SummaryModel{
		UserID:    user.ID,
		InputType: models.InputURL,
		Input:     "https://example.com/a",
		Options:   models.SummaryOptions{Type: "bullets", Length: "short"},
		Summary:   "result",
	}).Error)

	series, err := svc.SummaryTrends(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, series, 7)

	today := series[len(series)-1]
	assert.Equal(t, int64(3), today.Count)
	assert.Equal(t, int64(2), today.ByStyle["abstractive"])
	assert.Equal(t, int64(1), today.ByStyle["bullets"])
	assert.Equal(t, int64(2), today.ByLength["medium"])
	assert.Equal(t, int64(1), today.ByLength["short"])

	for _, day := range series[:len(series)-1] {
		assert.Zero(t, day.Count)
	}
}

func TestExportUsersCSV(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "Alice", "alice@example.com", models.RoleAdmin)
	seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportUsersCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,email,role,status,verified,createdAt", lines[0])
	assert.Contains(t, buf.String(), "alice@example.com")
	assert.Contains(t, buf.String(), "bob@example.com")
}

func TestExportSummariesCSVOmitsSourceText(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	seedUserSummary(t, db, user.ID, models.InputText)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSummariesCSV(context.Background(), &buf))

	assert.Contains(t, buf.String(), user.ID)
	assert.NotContains(t, buf.String(), "source")
}
