package main

import (
	"fmt"
	"log"
	"time"

	"taxpadi/internal/cache/redis"
	"taxpadi/internal/config"
	"taxpadi/internal/email/noop"
	"taxpadi/internal/email/ses"
	"taxpadi/internal/handler"
	"taxpadi/internal/port"
	"taxpadi/internal/repository/postgres"
	"taxpadi/internal/router"
	"taxpadi/internal/service"
	s3storage "taxpadi/internal/storage/s3"
	"taxpadi/internal/tax"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	calcRepo := postgres.NewCalculationRepo(db)

	// Initialize cache; without a Redis address runs uncached
	var cache port.Cache
	if cfg.Redis.Addr != "" {
		cache, err = redis.NewCache(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Printf("history cache enabled at %s", cfg.Redis.Addr)
	} else {
		cache = redis.NewNoopCache()
		log.Println("no redis address configured; history cache disabled")
	}

	// Initialize export storage; without a bucket exports stream inline
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("export storage enabled in bucket %s", cfg.S3.Bucket)
	} else {
		log.Println("no S3 bucket configured; exports stream inline")
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// Initialize services
	calculator := tax.NewCalculator(tax.DefaultRates())
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(userRepo, emailSender, authSvc, cfg.JWT)
	passwordResetSvc := service.NewPasswordResetService(userRepo, emailSender, cfg.JWT)
	calcSvc := service.NewCalculationService(calculator, calcRepo, cache)
	historySvc := service.NewHistoryService(calcRepo, cache, cfg.Redis.TTL)
	exportSvc := service.NewExportService(calcRepo, storage, cfg.S3.Bucket, time.Duration(cfg.S3.PresignExpiry)*time.Second)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, registrationSvc, passwordResetSvc)
	taxH := handler.NewTaxHandler(calcSvc, calculator.Rates())
	calcH := handler.NewCalculationHandler(calcSvc, historySvc, exportSvc)
	userH := handler.NewUserHandler(userSvc, historySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, taxH, calcH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
