package demo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/jwt"
)

const (
	demoEmail = "demo@neurobrief.app"
	demoTTL   = time.Hour
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IssueToken returns a short-lived token for the shared demo account,
// creating the account and reseeding its example summaries on each request
// so every demo session starts from the same state.
func (s *Service) IssueToken(ctx context.Context) (string, error) {
	user, err := s.ensureUser(ctx)
	if err != nil {
		return "", err
	}
	if err := s.reseed(ctx, user.ID); err != nil {
		return "", err
	}
	return jwt.SignDemo(user.ID, demoTTL)
}

func (s *Service) ensureUser(ctx context.Context) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "email = ?", demoEmail).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// the demo account has no usable password; access is token-only
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.UserModel{
		Name:         "Demo User",
		Email:        demoEmail,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		IsVerified:   true,
		IsDemo:       true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) reseed(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SummaryModel{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		for _, seed := range seedSummaries(userID) {
			seed := seed
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func seedSummaries(userID string) []models.SummaryModel {
	return []models.SummaryModel{
		{
			UserID:    userID,
			InputType: models.InputText,
			Input:     "The James Webb Space Telescope has captured its deepest infrared image of the early universe to date, revealing galaxies that formed within a few hundred million years of the Big Bang.",
			Options:   models.SummaryOptions{Type: "abstractive", Length: "short"},
			Summary:   "Webb's deepest infrared image yet reveals galaxies formed shortly after the Big Bang.",
		},
		{
			UserID:    userID,
			InputType: models.InputURL,
			Input:     "https://example.com/articles/ocean-currents",
			Options:   models.SummaryOptions{Type: "bullets", Length: "medium"},
			Summary:   "- Ocean currents redistribute heat between the equator and the poles.\n- The Atlantic circulation has slowed measurably over the past century.\n- Models disagree on how close the system is to a tipping point.",
		},
	}
}
