package main

import (
	"context"
	"fmt"
	"kingtech-store/internal/client"
	"kingtech-store/internal/config"
	"kingtech-store/internal/logging"
	"kingtech-store/internal/repository"
	"kingtech-store/internal/server"
	"kingtech-store/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log)

	db, err := client.InitDBClient(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("init database")
	}

	assetStore, err := client.NewCloudinaryClient(&cfg.Cloudinary)
	if err != nil {
		log.WithError(err).Fatal("init asset store")
	}

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewDownloadVerificationRepository(db)

	verificationService := service.NewVerificationService(verificationRepo, productRepo, time.Now, uuid.NewString)
	productService := service.NewProductService(productRepo, orderRepo, verificationRepo, assetStore, &cfg.Cloudinary, log)
	orderService := service.NewOrderService(userRepo, orderRepo, verificationService, client.NewSMTPMailer(&cfg.SMTP), cfg.BaseURL, log)
	statsService := service.NewStatsService(productRepo, orderRepo, userRepo)
	authService := service.NewAuthService(&cfg.Google, &cfg.Admin, &cfg.Session)

	srv := server.NewServer(server.Options{
		AuthService:         authService,
		ProductService:      productService,
		VerificationService: verificationService,
		OrderService:        orderService,
		StatsService:        statsService,
		BasicAuthEnabled:    cfg.Admin.BasicAuth,
		SecureCookies:       cfg.Environment.Name == "production",
	})

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("Starting HTTP server on ", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}
