package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mediahub/internal/config"
	"mediahub/internal/db"
	apihttp "mediahub/internal/http"
	"mediahub/internal/repository"
	"mediahub/internal/service"
	"mediahub/internal/sms"
	"mediahub/internal/sso"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	otpRepo := repository.NewPgOTPRepository(pool)
	categoryRepo := repository.NewPgCategoryRepository(pool)
	contentRepo := repository.NewPgContentRepository(pool)
	downloadRepo := repository.NewPgDownloadRepository(pool)

	var smsSender sms.Sender = sms.NewDisabledSender(logger)
	if cfg.SMSGatewayURL != "" {
		sender, err := sms.NewGatewaySender(cfg.SMSGatewayURL, cfg.SMSGatewayKey, logger)
		if err != nil {
			logger.Warn("sms gateway init failed", zap.Error(err))
		} else {
			smsSender = sender
		}
	}

	var verifier sso.Verifier
	if cfg.SSOSharedSecret != "" {
		verifier = sso.NewJWTVerifier(cfg.SSOSharedSecret)
	} else {
		logger.Warn("sso shared secret not configured, using passthrough verifier")
		verifier = sso.NewPassthroughVerifier()
	}

	var sendLimiter service.SendLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			sendLimiter = service.NewRedisSendLimiter(redisClient, 10*time.Minute, 3)
		}
		cancel()
	}

	tokenServ := service.NewTokenService(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		time.Duration(cfg.AccessTTLSeconds)*time.Second,
		time.Duration(cfg.RefreshTTLSeconds)*time.Second,
	)
	otpServ := service.NewOTPService(logger, otpRepo, cfg.OTPMasterCode)
	if cfg.OTPMasterCode != "" {
		logger.Warn("otp master code enabled, do not use in production")
	}
	authServ := service.NewAuthService(logger, userRepo, otpServ, tokenServ, smsSender, verifier, sendLimiter)
	adminServ := service.NewAdminService(logger, userRepo)
	categoryServ := service.NewCategoryService(logger, categoryRepo)
	contentServ := service.NewContentService(logger, contentRepo, downloadRepo)

	authHandler := apihttp.NewAuthHandler(logger, authServ)
	adminHandler := apihttp.NewAdminHandler(logger, authServ, adminServ)
	categoryHandler := apihttp.NewCategoryHandler(logger, categoryServ)
	contentHandler := apihttp.NewContentHandler(logger, contentServ)

	router := apihttp.NewRouter(logger, pool, tokenServ, authHandler, adminHandler, categoryHandler, contentHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
