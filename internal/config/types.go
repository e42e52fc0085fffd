package config

import (
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/llm"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/mail"
)

type AppConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	DSN            string   `yaml:"dsn"`
	RedisURL       string   `yaml:"redis_url"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	FrontendURL    string   `yaml:"frontend_url"`
	UploadDir      string   `yaml:"upload_dir"`

	Mail mail.Config `yaml:"mail"`
	AI   llm.Config  `yaml:"ai"`
}

func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}
