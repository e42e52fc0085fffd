package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/jwt"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/mail"
)

const (
	tokenTTL        = 7 * 24 * time.Hour
	verificationTTL = time.Hour
	resetTTL        = time.Hour
	bcryptCost      = bcrypt.DefaultCost
)

type Service struct {
	db          *gorm.DB
	mailer      *mail.Sender
	logger      *zap.Logger
	frontendURL string
}

func NewService(db *gorm.DB, mailer *mail.Sender, logger *zap.Logger, frontendURL string) *Service {
	return &Service{db: db, mailer: mailer, logger: logger, frontendURL: frontendURL}
}

// Register creates an unverified account and emails a 6-digit verification
// code. When mail delivery is disabled the account is verified immediately
// so local setups stay usable.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}

	user := models.UserModel{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}

	if !s.mailer.Enabled() {
		user.IsVerified = true
		return s.db.WithContext(ctx).Create(&user).Error
	}

	code, err := verificationCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(verificationTTL)
	user.EmailVerificationToken = code
	user.EmailVerificationExpires = &expires

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}

	if err := s.mailer.Send(mail.VerificationMessage(user.Email, code)); err != nil {
		s.logger.Warn("verification mail failed", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// VerifyEmail checks the emailed code and, on success, marks the account
// verified and issues a session token.
func (s *Service) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*TokenResponse, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(req.Email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if user.EmailVerificationToken == "" ||
		user.EmailVerificationToken != strings.TrimSpace(req.Code) ||
		user.EmailVerificationExpires == nil ||
		time.Now().After(*user.EmailVerificationExpires) {
		return nil, ErrInvalidCode
	}

	updates := map[string]interface{}{
		"is_verified":                true,
		"email_verification_token":   "",
		"email_verification_expires": nil,
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.IsVerified = true

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, User: &user}, nil
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(req.Email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	if user.Status == models.StatusBanned {
		return nil, ErrBanned
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, User: &user}, nil
}

// ForgotPassword stores a reset token and emails a reset link. It reveals
// nothing about whether the address exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTTL)

	updates := map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.frontendURL, "/"), token)
	if err := s.mailer.Send(mail.PasswordResetMessage(user.Email, resetURL)); err != nil {
		s.logger.Warn("reset mail failed", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}

	var user models.UserModel
	err := s.db.WithContext(ctx).
		First(&user, "reset_password_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if user.ResetPasswordExpires == nil || time.Now().After(*user.ResetPasswordExpires) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password_hash":          string(hash),
		"reset_password_token":   "",
		"reset_password_expires": nil,
	}).Error
}

// Profile returns the current user.
func (s *Service) Profile(ctx context.Context, userID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes name and/or email. A changed email must stay unique.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.UserModel, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if email := normalizeEmail(req.Email); email != "" && email != user.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
			Where("email = ? AND id <> ?", email, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		updates["email"] = email
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Profile(ctx, userID)
}

// ChangePassword verifies the current password before setting the new one.
func (s *Service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).
		Update("password_hash", string(hash)).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// verificationCode returns a 6-digit numeric code.
func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
