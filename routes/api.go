package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/handlers"
	"github.com/onurcolak/smscountry-call-gateway/internal/middlewares"
)

// RegisterRoutes registers all API routes with middleware
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	callHandler *handlers.CallHandler,
	schedulerHandler *handlers.SchedulerHandler,
	cfg *environments.Config,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	calls := v1.Group("/calls", middlewares.APIKeyAuth("calls", cfg.Auth.CallsAPIKey))

	// Static segments before /:uuid.
	calls.GET("/history", callHandler.GetCallHistory)
	calls.GET("/history/:uuid", callHandler.GetStoredCall)
	calls.GET("/stats", callHandler.GetStats)
	calls.GET("/tracked", callHandler.GetTrackedCalls)
	calls.POST("/bulk", callHandler.InitiateBulkCall)

	calls.GET("", callHandler.GetCollection)
	calls.POST("", callHandler.InitiateCall)
	calls.GET("/:uuid", callHandler.GetDetails)
	calls.PATCH("/:uuid", callHandler.TerminateCall)

	schedulerGroup := v1.Group("/scheduler", middlewares.APIKeyAuth("scheduler", cfg.Auth.SchedulerAPIKey))

	schedulerGroup.POST("/start", schedulerHandler.StartScheduler)
	schedulerGroup.POST("/stop", schedulerHandler.StopScheduler)
	schedulerGroup.GET("/status", schedulerHandler.GetSchedulerStatus)
}
