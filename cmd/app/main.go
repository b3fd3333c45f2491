package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"tradejournal/configs"
	"tradejournal/internal/database"
	delivery "tradejournal/internal/delivery/http"
	"tradejournal/internal/domain"
	"tradejournal/internal/infra"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
	"tradejournal/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()

	ctx := context.Background()

	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Services
	authService := service.NewAuthService(userRepo)
	priceFeed := service.NewMarketPriceService(cfg.Feeds.FMPAPIKey, cfg.Feeds.TwelveDataAPIKey)
	rateFeed := service.NewExchangeRateService()
	journal := usecase.NewJournalService(tradeRepo, settingsRepo, rateFeed)

	bootstrap(ctx, userRepo, settingsRepo)

	// Feed housekeeping: warm the FX rate hourly, sweep stale price cache
	// entries every minute.
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rateFeed.Refresh(ctx)
	}); err != nil {
		log.Fatalf("Failed to add rate refresh cron job: %v", err)
	}
	if _, err := cronScheduler.AddFunc("* * * * *", priceFeed.SweepCache); err != nil {
		log.Fatalf("Failed to add price cache sweep cron job: %v", err)
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	authHandler := delivery.NewAuthHandler(authService)
	userHandler := delivery.NewUserHandler(userRepo, authService)
	tradeHandler := delivery.NewTradeHandler(journal, priceFeed)
	adminHandler := delivery.NewAdminHandler(userRepo, tradeRepo, authService, journal)

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:  authHandler,
		UserHandler:  userHandler,
		TradeHandler: tradeHandler,
		AdminHandler: adminHandler,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Trade journal starting on %s (env: %s)", addr, cfg.Server.Env)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// bootstrap seeds the store flag and, on a fresh install, the default admin
// account. The default credential must be rotated before production use.
func bootstrap(ctx context.Context, userRepo domain.UserRepository, settingsRepo domain.SettingsRepository) {
	if _, found, err := settingsRepo.Get(ctx, domain.SettingStoreStatus); err != nil {
		log.Printf("[WARN] Failed to read store status: %v", err)
	} else if !found {
		if err := settingsRepo.Set(ctx, domain.SettingStoreStatus, domain.StoreOpen); err != nil {
			log.Printf("[WARN] Failed to seed store status: %v", err)
		}
	}

	count, err := userRepo.Count(ctx)
	if err != nil {
		log.Printf("[WARN] Failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	log.Println("No users found, creating default admin account...")

	hash, err := service.HashPassword("admin123")
	if err != nil {
		log.Printf("[WARN] Failed to hash default admin password: %v", err)
		return
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("[WARN] Failed to create default admin: %v", err)
		return
	}

	log.Println("[OK] Created default admin (username 'admin'). Rotate the default password before production use")
}
