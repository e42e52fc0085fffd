package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive = "active"
	StatusBanned = "banned"
)

type UserModel struct {
	Base
	Name         string `gorm:"type:varchar(120);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         string `gorm:"type:varchar(16);default:user" json:"role"`
	Status       string `gorm:"type:varchar(16);default:active" json:"status"`
	IsVerified   bool   `gorm:"default:false" json:"isVerified"`
	IsDemo       bool   `gorm:"default:false" json:"isDemo,omitempty"`

	EmailVerificationToken   string     `gorm:"type:varchar(64)" json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	ResetPasswordToken       string     `gorm:"type:varchar(64)" json:"-"`
	ResetPasswordExpires     *time.Time `json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}
