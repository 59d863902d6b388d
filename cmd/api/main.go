package main

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/ai"
	appcontext "github.com/SeakMengs/AutoRFP/internal/app_context"
	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/database"
	"github.com/SeakMengs/AutoRFP/internal/env"
	"github.com/SeakMengs/AutoRFP/internal/extractor"
	filestorage "github.com/SeakMengs/AutoRFP/internal/file_storage"
	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/SeakMengs/AutoRFP/internal/notifier"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/SeakMengs/AutoRFP/internal/queue"
	ratelimiter "github.com/SeakMengs/AutoRFP/internal/rate_limiter"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/route"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewFileLogger(cfg.ENV, cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	ctx := context.Background()

	gemini, err := ai.NewGeminiClient(ctx, cfg.AI)
	if err != nil {
		logger.Panic(err)
	}
	defer gemini.Close()
	gateway := ai.NewGeminiGateway(gemini, cfg.AI.RequestTimeout, logger)

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panicf("Failed to register custom validations: %v", err)
		}
	}

	var limiterStore ratelimiter.Store
	if cfg.Redis.Enabled() {
		client, err := ratelimiter.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warnf("Redis unavailable, rate limits are kept in memory: %v", err)
		} else {
			defer client.Close()
			limiterStore = ratelimiter.NewRedisStore(client)
			logger.Info("Redis connected \n")
		}
	}
	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, limiterStore, logger)

	var publisher notifier.Publisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
		if err != nil {
			logger.Warnf("RabbitMQ unavailable, email is sent inline: %v", err)
		} else {
			defer rabbitMQ.Close()
			publisher = rabbitMQ
			logger.Info("RabbitMQ connected \n")
		}
	}

	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, jwtService, s3)
	files := filestorage.NewBucketStore(s3, cfg.Minio.BUCKET)

	app := appcontext.Application{
		Config:      &cfg,
		Repository:  repo,
		Logger:      logger,
		Notifier:    notifier.New(mailer.New(cfg, logger), publisher, logger),
		JWTService:  jwtService,
		S3:          s3,
		Files:       files,
		AI:          gateway,
		Pipeline:    pipeline.New(pipeline.NewRepositoryStore(repo), files, gateway, extractor.New(), logger),
		RateLimiter: rateLimiter,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(_middleware.Recovery(), _middleware.RequestLogger)

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Refresh", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)
	route.Register(r, _controller, _middleware)

	logger.Infof("Listening on port %s", cfg.Port)
	if err := r.Run("0.0.0.0:" + cfg.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
