package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	FrontURL    string
	LogFile     string
	DB          DatabaseConfig
	RateLimiter RateLimiterConfig
	Mail        MailConfig
	Auth        AuthConfig
	Minio       MinioConfig
	RabbitMQ    RabbitMQConfig
	Redis       RedisConfig
	AI          AIConfig
	Upload      UploadConfig
	Export      ExportConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool

	// Route specific windows
	AuthAttempts        int
	AuthTimeFrame       time.Duration
	AIGenerations       int
	AITimeFrame         time.Duration
	Invitations         int
	InvitationTimeFrame time.Duration
}

type AuthConfig struct {
	JWT_SECRET        string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	ResetTokenTTL     time.Duration
	GoogleOAuthConfig GoogleOAuthConfig
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type DatabaseConfig struct {
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	DB_SSLMODE   string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MailConfig struct {
	// sendgrid or smtp
	DRIVER             string
	SEND_GRID          SendGridConfig
	FROM_EMAIL         string
	GMAIL_USERNAME     string
	GMAIL_APP_PASSWORD string
}

type SendGridConfig struct {
	API_KEY string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

type RabbitMQConfig struct {
	URL string
}

func (r RabbitMQConfig) GetConnectionString() string {
	return r.URL
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type RedisConfig struct {
	ADDR     string
	PASSWORD string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.ADDR != ""
}

type AIConfig struct {
	GEMINI_API_KEY string
	MODEL          string
	Temperature    float64
	MaxOutputToken int
	RequestTimeout time.Duration
}

type UploadConfig struct {
	MaxBytes int64
}

type ExportConfig struct {
	// Regular and bold TTF used to render PDF exports
	FontPath     string
	BoldFontPath string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

// Validate reports every required variable that is missing so startup can abort with one
// descriptive error.
func (c Config) Validate() error {
	var missing []string

	if c.DB.DB_HOST == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Auth.JWT_SECRET == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if c.AI.GEMINI_API_KEY == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.AI.MODEL == "" {
		missing = append(missing, "GEMINI_MODEL")
	}
	if c.FrontURL == "" {
		missing = append(missing, "FRONTEND_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Upload.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be greater than zero")
	}

	return nil
}

func parseDuration(key, fallback string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(env.GetString(key, fallback))
	if err != nil {
		return def
	}
	return d
}

func GetConfig() Config {
	return Config{
		Port:     env.GetString("PORT", "8080"),
		ENV:      env.GetString("ENV", "development"),
		FrontURL: env.GetString("FRONTEND_URL", ""),
		LogFile:  env.GetString("LOG_FILE", ""),
		DB: DatabaseConfig{
			DB_HOST:      env.GetString("DB_HOST", ""),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "postgres"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "autorfp"),
			DB_SSLMODE:   env.GetString("DB_SSLMODE", "disable"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            parseDuration("RATE_LIMIT_TIME_FRAME", "1m", time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
			AuthAttempts:         env.GetInt("RATE_LIMIT_AUTH_ATTEMPTS", 5),
			AuthTimeFrame:        parseDuration("RATE_LIMIT_AUTH_TIME_FRAME", "15m", 15*time.Minute),
			AIGenerations:        env.GetInt("RATE_LIMIT_AI_GENERATIONS", 20),
			AITimeFrame:          parseDuration("RATE_LIMIT_AI_TIME_FRAME", "1h", time.Hour),
			Invitations:          env.GetInt("RATE_LIMIT_INVITATIONS", 50),
			InvitationTimeFrame:  parseDuration("RATE_LIMIT_INVITATION_TIME_FRAME", "24h", 24*time.Hour),
		},
		Mail: MailConfig{
			DRIVER:     env.GetString("MAIL_DRIVER", "sendgrid"),
			FROM_EMAIL: env.GetString("MAIL_FROM_MAIL", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
			GMAIL_USERNAME:     env.GetString("MAIL_GMAIL_USERNAME", ""),
			GMAIL_APP_PASSWORD: env.GetString("MAIL_GMAIL_APP_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWT_SECRET:      env.GetString("AUTH_JWT_SECRET", ""),
			AccessTokenTTL:  parseDuration("AUTH_ACCESS_TOKEN_TTL", "15m", 15*time.Minute),
			RefreshTokenTTL: parseDuration("AUTH_REFRESH_TOKEN_TTL", "168h", 7*24*time.Hour),
			ResetTokenTTL:   parseDuration("AUTH_RESET_TOKEN_TTL", "1h", time.Hour),
			GoogleOAuthConfig: GoogleOAuthConfig{
				ClientID:     env.GetString("GOOGLE_OAUTH_CLIENT_ID", ""),
				ClientSecret: env.GetString("GOOGLE_OAUTH_CLIENT_SECRET", ""),
				RedirectURL:  env.GetString("GOOGLE_OAUTH_CALLBACK", "http://localhost:8080/api/auth/google/callback"),
			},
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "autorfp"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		RabbitMQ: RabbitMQConfig{
			URL: env.GetString("RABBITMQ_URL", ""),
		},
		Redis: RedisConfig{
			ADDR:     env.GetString("REDIS_ADDR", ""),
			PASSWORD: env.GetString("REDIS_PASSWORD", ""),
			DB:       env.GetInt("REDIS_DB", 0),
		},
		AI: AIConfig{
			GEMINI_API_KEY: env.GetString("GEMINI_API_KEY", ""),
			MODEL:          env.GetString("GEMINI_MODEL", "gemini-1.5-flash"),
			Temperature:    float64(env.GetInt("GEMINI_TEMPERATURE_PERCENT", 70)) / 100,
			MaxOutputToken: env.GetInt("GEMINI_MAX_OUTPUT_TOKENS", 8192),
			RequestTimeout: parseDuration("GEMINI_REQUEST_TIMEOUT", "120s", 120*time.Second),
		},
		Upload: UploadConfig{
			MaxBytes: env.GetInt64("UPLOAD_MAX_BYTES", 10<<20),
		},
		Export: ExportConfig{
			FontPath:     env.GetString("EXPORT_FONT_PATH", ""),
			BoldFontPath: env.GetString("EXPORT_BOLD_FONT_PATH", ""),
		},
	}
}
