package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rewardsystem/rewards-api/internal/api/handler"
	"github.com/rewardsystem/rewards-api/internal/api/middleware"
	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
	"github.com/rewardsystem/rewards-api/internal/core/token"
)

// Dependencies carries everything the router needs; construction happens in
// cmd/api so the wiring stays in one place.
type Dependencies struct {
	Mongo        *mongo.Database
	Redis        *redis.Client
	Codec        *token.Codec
	Users        ports.UserRepository
	Auth         ports.AuthService
	Rewards      ports.RewardService
	Transactions ports.TransactionService
	Dispatcher   handler.TransactionDispatcher
	Log          zerolog.Logger
}

// DefaultPolicyTable is the route-to-role mapping enforced at the request
// boundary. Longest prefix wins, so the /v1/api/rewards rule shadows the
// broader /v1/api/ one; anything unlisted requires a valid token but no
// specific role.
func DefaultPolicyTable() middleware.PolicyTable {
	return middleware.PolicyTable{
		{Prefix: "/public/", Public: true},
		{Prefix: "/auth/", Public: true},
		{Prefix: "/health", Public: true},
		{Prefix: "/metrics", Public: true},
		{Prefix: "/admin/", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/manager/", Roles: []domain.Role{domain.RoleManager, domain.RoleAdmin}},
		{Prefix: "/v1/api/", Roles: []domain.Role{domain.RoleUser, domain.RoleManager, domain.RoleAdmin}},
		{Prefix: "/v1/api/rewards", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("rewards"))
	e.Use(middleware.Enforcer(DefaultPolicyTable(), deps.Codec, deps.Users, deps.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	rewardHandler := handler.NewRewardHandler(deps.Rewards)
	txnHandler := handler.NewTransactionHandler(deps.Dispatcher, deps.Transactions)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/validate", authHandler.Validate)

	// --- Rewards ---
	e.GET("/v1/api/rewards", rewardHandler.All)
	e.GET("/v1/api/customers/:customer_id/rewards", rewardHandler.ByCustomer)

	// --- Transaction ingestion (admin) and listing (manager) ---
	e.POST("/admin/transactions", txnHandler.Receive)
	e.POST("/admin/transactions/batch", txnHandler.ReceiveBatch)
	e.GET("/manager/transactions", txnHandler.List)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
