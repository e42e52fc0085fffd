package auth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/database"
	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/jwt"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/mail"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	jwt.SetSecret("auth-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// mail disabled: registration verifies immediately
	mailer := mail.New(mail.Config{})
	return NewService(db, mailer, zap.NewNop(), "http://localhost:3000"), db
}

func register(t *testing.T, svc *Service, email string) {
	t.Helper()
	err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")

	var user models.UserModel
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	assert.True(t, user.IsVerified)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	res, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Alice@Example.COM",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	claims, err := jwt.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice@example.com")

	err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Someone Else",
		Email:    "ALICE@example.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice@example.com")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnverified(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")
	require.NoError(t, db.Model(&models.UserModel{}).
		Where("email = ?", "alice@example.com").
		Update("is_verified", false).Error)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestLoginBanned(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")
	require.NoError(t, db.Model(&models.UserModel{}).
		Where("email = ?", "alice@example.com").
		Update("status", models.StatusBanned).Error)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrBanned)
}

func TestVerifyEmail(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")

	expires := time.Now().Add(time.Hour)
	require.NoError(t, db.Model(&models.UserModel{}).
		Where("email = ?", "alice@example.com").
		Updates(map[string]interface{}{
			"is_verified":                false,
			"email_verification_token":   "123456",
			"email_verification_expires": expires,
		}).Error)

	_, err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "alice@example.com",
		Code:  "654321",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)

	res, err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "alice@example.com",
		Code:  "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	var user models.UserModel
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.EmailVerificationToken)

	// the code is single-use
	_, err = svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "alice@example.com",
		Code:  "123456",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.UserModel{}).
		Where("email = ?", "alice@example.com").
		Updates(map[string]interface{}{
			"is_verified":                false,
			"email_verification_token":   "123456",
			"email_verification_expires": expired,
		}).Error)

	_, err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{
		Email: "alice@example.com",
		Code:  "123456",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestForgotPasswordHidesUnknownEmails(t *testing.T) {
	svc, _ := newTestService(t)
	assert.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
}

func TestResetPassword(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")

	expires := time.Now().Add(time.Hour)
	require.NoError(t, db.Model(&models.UserModel{}).
		Where("email = ?", "alice@example.com").
		Updates(map[string]interface{}{
			"reset_password_token":   "tok-abc",
			"reset_password_expires": expires,
		}).Error)

	assert.ErrorIs(t,
		svc.ResetPassword(context.Background(), "wrong-token", "newpassword"),
		ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(context.Background(), "tok-abc", "newpassword"))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "newpassword",
	})
	assert.NoError(t, err)

	// token is consumed
	assert.ErrorIs(t,
		svc.ResetPassword(context.Background(), "tok-abc", "another"),
		ErrInvalidResetToken)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")
	register(t, svc, "bob@example.com")

	var alice models.UserModel
	require.NoError(t, db.First(&alice, "email = ?", "alice@example.com").Error)

	_, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileRequest{
		Email: "bob@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileRequest{
		Name: "Alice Prime",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Prime", updated.Name)
}

func TestChangePassword(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc, "alice@example.com")

	var alice models.UserModel
	require.NoError(t, db.First(&alice, "email = ?", "alice@example.com").Error)

	err := svc.ChangePassword(context.Background(), alice.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "changed1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), alice.ID, ChangePasswordRequest{
		CurrentPassword: "hunter22",
		NewPassword:     "changed1",
	}))

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "changed1",
	})
	assert.NoError(t, err)
}
