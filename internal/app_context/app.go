package appcontext

import (
	"github.com/SeakMengs/AutoRFP/internal/ai"
	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/notifier"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	ratelimiter "github.com/SeakMengs/AutoRFP/internal/rate_limiter"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Notifier sends best-effort email, through RabbitMQ when it is configured.
	Notifier *notifier.Notifier

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	S3 *minio.Client

	// Files stores uploaded bytes (RFPs and profile documents).
	Files pipeline.FileStore

	AI ai.Gateway

	Pipeline *pipeline.Pipeline

	// RateLimiter is used directly by handlers that charge more than one hit per request.
	RateLimiter *ratelimiter.FixedWindowRateLimiter
}
