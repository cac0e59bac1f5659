// README: HTTP router registration; every mutating route sits behind the auth gate.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/http/handlers"
	"swiftlogix/internal/http/middleware"
	"swiftlogix/internal/modules/location"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/modules/user"
)

type RouterDeps struct {
	Users     *user.Service
	Orders    *order.Service
	Locations *location.Service
	Tokens    *auth.TokenService
	Logger    *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
	)

	authHandler := handlers.NewAuthHandler(deps.Users)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Locations)
	driverHandler := handlers.NewDriverHandler(deps.Orders, deps.Users, deps.Locations)
	adminHandler := handlers.NewAdminHandler(deps.Orders, deps.Users)

	api := r.Group("/api")

	public := api.Group("/auth")
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/forgot-password", authHandler.ForgotPassword)
	public.POST("/reset-password", authHandler.ResetPassword)

	authed := api.Group("", middleware.Auth(deps.Tokens))

	customer := authed.Group("/customer", middleware.RequireRoles(auth.RoleCustomer))
	customer.POST("/orders", orderHandler.Create)
	customer.GET("/orders", orderHandler.ListMine)
	customer.GET("/orders/:id/track", orderHandler.Track)

	// Cancellation and status advance are shared with admins.
	orders := authed.Group("/orders")
	orders.POST("/:id/cancel", middleware.RequireRoles(auth.RoleCustomer, auth.RoleAdmin), orderHandler.Cancel)
	orders.POST("/:id/status", middleware.RequireRoles(auth.RoleDriver, auth.RoleAdmin), driverHandler.UpdateStatus)

	driver := authed.Group("/driver", middleware.RequireRoles(auth.RoleDriver))
	driver.GET("/orders/available", driverHandler.Available)
	driver.POST("/orders/:id/accept", driverHandler.Accept)
	driver.POST("/location", driverHandler.UpdateLocation)
	driver.POST("/availability", driverHandler.SetAvailability)
	driver.GET("/earnings", driverHandler.Earnings)

	admin := authed.Group("/admin", middleware.RequireRoles(auth.RoleAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
