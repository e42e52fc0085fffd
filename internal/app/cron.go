package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/config"
	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	pkgcron "github.com/Omidcr77/neurobrief-sub000/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:        "expire_auth_tokens",
		Description: "Clear expired email verification and password reset tokens",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			now := time.Now()

			res := db.WithContext(ctx).Model(&models.UserModel{}).
				Where("email_verification_expires IS NOT NULL AND email_verification_expires < ?", now).
				Updates(map[string]interface{}{
					"email_verification_token":   "",
					"email_verification_expires": nil,
				})
			if res.Error != nil {
				return res.Error
			}
			cleared := res.RowsAffected

			res = db.WithContext(ctx).Model(&models.UserModel{}).
				Where("reset_password_expires IS NOT NULL AND reset_password_expires < ?", now).
				Updates(map[string]interface{}{
					"reset_password_token":   "",
					"reset_password_expires": nil,
				})
			if res.Error != nil {
				return res.Error
			}
			cleared += res.RowsAffected

			if cleared > 0 {
				cronLogger.Info(fmt.Sprintf("cleared %d expired auth tokens", cleared))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_uploads",
		Description: "Delete stale files left in the upload directory",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			entries, err := os.ReadDir(cfg.UploadDir)
			if os.IsNotExist(err) {
				return nil
			}
			if err != nil {
				return err
			}

			cutoff := time.Now().Add(-time.Hour)
			removed := 0
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				info, err := entry.Info()
				if err != nil || info.ModTime().After(cutoff) {
					continue
				}
				path := filepath.Join(cfg.UploadDir, entry.Name())
				if err := os.Remove(path); err != nil {
					cronLogger.Warn("failed to remove stale upload", zap.String("path", path), zap.Error(err))
					continue
				}
				removed++
			}
			if removed > 0 {
				cronLogger.Info(fmt.Sprintf("removed %d stale uploads", removed))
			}
			return nil
		},
	})
}
