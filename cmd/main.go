package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"

	"github.com/alexnev/accountcore/internal/api/http/appctx"
	"github.com/alexnev/accountcore/internal/api/http/handler"
	"github.com/alexnev/accountcore/internal/api/http/middleware"
	"github.com/alexnev/accountcore/internal/api/http/router"
	"github.com/alexnev/accountcore/internal/config"
	"github.com/alexnev/accountcore/internal/email"
	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
	"github.com/alexnev/accountcore/internal/password"
	"github.com/alexnev/accountcore/internal/repository/memory"
	"github.com/alexnev/accountcore/internal/repository/postgres"
	redisrepo "github.com/alexnev/accountcore/internal/repository/redis"
	"github.com/alexnev/accountcore/internal/server"
	"github.com/alexnev/accountcore/internal/service"
	"github.com/alexnev/accountcore/internal/session"
	storage "github.com/alexnev/accountcore/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	rateLimitStore, err := newRateLimitStore(cfg, db)
	if err != nil {
		logger.Fatal("failed to initialize rate limit backend", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	hasher := password.NewHasher()
	emailSender := email.NewLogSender(logger.WithComponent("email"))

	accountService := service.NewAccount(userRepo, tokenRepo, hasher, emailSender, cfg.TokenKey, cfg.BaseURL, logger.WithComponent("account"))
	securityService := service.NewSecurity(rateLimitStore, auditRepo, service.SecurityConfig{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
	}, logger.WithComponent("security"))
	profileService := service.NewProfile(userRepo, storageClient, cfg.Storage.PublicURL, logger.WithComponent("profile"))

	ctxMgr := appctx.NewManager()
	verifier := session.NewVerifier(cfg.Session.Secret)

	h := router.New(router.Options{
		Account:        handler.NewAccount(accountService, logger),
		Profile:        handler.NewProfile(profileService, ctxMgr, logger),
		Reports:        handler.NewReports(securityService, ctxMgr, logger),
		Logging:        middleware.NewLogging(logger.WithComponent("http")),
		Authenticate:   middleware.NewAuthenticate(verifier, ctxMgr, logger.WithComponent("auth")),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	httpServer := server.NewHTTPServer(h, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newRateLimitStore(cfg *config.Config, db *postgres.Connection) (model.RateLimitStore, error) {
	switch cfg.RateLimit.Backend {
	case "memory":
		return memory.NewRateLimitStore(), nil
	case "postgres":
		return postgres.NewRateLimitRepository(db), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisrepo.NewRateLimitStore(client), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend: %q", cfg.RateLimit.Backend)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
