package handler

import (
	"net/http"

	"fleet-toll-gateway/internal/adapter/http/middleware"
	redisStore "fleet-toll-gateway/internal/adapter/storage/redis"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"
	"fleet-toll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc  ports.SettlementService
	ReconcilerSvc  ports.ReconcilerService
	FleetSvc       ports.FleetService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	paymentHandler := NewPaymentHandler(deps.SettlementSvc, deps.ReconcilerSvc)
	vehicleHandler := NewVehicleHandler(deps.FleetSvc)
	stationHandler := NewStationHandler(deps.FleetSvc)

	// --- Payment routes ---
	payments := r.Group("/payments")
	{
		// The IPN callback is authenticated by its HMAC signature, not a JWT.
		// The provider only ever POSTs; any other method is rejected the
		// same way as a bad signature.
		payments.POST("/coinpayments/ipn", rl("ipn"), paymentHandler.HandleIPN)
		for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions} {
			payments.Handle(m, "/coinpayments/ipn", func(c *gin.Context) {
				response.Error(c, apperror.ErrInvalidIPN())
			})
		}
		payments.POST("/pay-toll/:vehicle_id", jwtAuth, rl("payments"), paymentHandler.PayTollCrypto)
	}

	// --- Vehicle routes (JWT) ---
	vehicles := r.Group("/vehicles", jwtAuth)
	{
		vehicles.POST("/pay-toll/:vehicle_id/:station_id", rl("payments"), paymentHandler.PayTollCard)
		vehicles.POST("", rl("fleet"), vehicleHandler.Register)
		vehicles.GET("", rl("fleet"), vehicleHandler.List)
		vehicles.GET("/:vehicle_id", rl("fleet"), vehicleHandler.Get)
		vehicles.POST("/:vehicle_id/topup", rl("fleet"), vehicleHandler.TopUp)
		vehicles.GET("/:vehicle_id/transactions", rl("fleet"), vehicleHandler.ListTransactions)
	}

	// --- Station routes (JWT) ---
	stations := r.Group("/stations", jwtAuth)
	{
		stations.POST("", rl("fleet"), stationHandler.Create)
		stations.GET("", rl("fleet"), stationHandler.List)
		stations.GET("/:station_id", rl("fleet"), stationHandler.Get)
	}

	return r
}
