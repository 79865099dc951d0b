package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sharveena123/paypals/internal/auth"
	"github.com/sharveena123/paypals/internal/config"
	"github.com/sharveena123/paypals/internal/httpapi"
	"github.com/sharveena123/paypals/internal/service"
	"github.com/sharveena123/paypals/internal/storage/sqlite"
	"github.com/sharveena123/paypals/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authService := service.NewAuthService(authenticator, jwtManager)
	groupService := service.NewGroupService(store)
	expenseService := service.NewExpenseService(store)
	settlementService := service.NewSettlementService(store)
	balanceService := service.NewBalanceService(store)

	router := httpapi.New(
		httpapi.NewAuthHandler(authService),
		httpapi.NewGroupHandler(groupService),
		httpapi.NewExpenseHandler(expenseService),
		httpapi.NewSettlementHandler(settlementService),
		httpapi.NewBalanceHandler(balanceService),
		jwtManager,
	)

	// h2c enables HTTP/2 without TLS for clients that speak it; HTTP/1.1
	// requests pass through unchanged.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server starting", "app", cfg.App.Name, "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
