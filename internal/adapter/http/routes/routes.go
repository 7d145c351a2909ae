package routes

import (
	"net/http"

	_ "order_ledger/docs"
	"order_ledger/internal/adapter/http/handlers"
	"order_ledger/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the handlers and settings the router mounts.
type Dependencies struct {
	Orders    *handlers.OrderHandler
	Events    *handlers.EventHandler
	Purchases *handlers.PurchaseHandler
	Gateways  *handlers.GatewayHandler
	JWTSecret string
	Metrics   http.Handler
	Logger    *zap.Logger
}

// NewRouter builds the gin engine. Metrics falls back to the default
// prometheus registry.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	router := gin.New()
	setMiddlewares(router, deps.Logger)

	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metrics))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	v1.GET("/ping", handlers.Ping)
	addGatewayRoutes(v1, deps.Gateways)
	addOrderRoutes(v1, deps.Orders)
	addEventRoutes(v1, deps.Events)

	admin := middleware.JWT(middleware.JWTConfig{
		Secret: deps.JWTSecret,
		Logger: deps.Logger,
		Role:   middleware.AdminRole,
	})
	addPurchaseRoutes(v1, deps.Purchases, admin)
	return router
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
}
