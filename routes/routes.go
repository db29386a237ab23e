package routes

import (
	"github.com/MangoYoun/aidlc-workshop-tableorder/handlers"
	"github.com/MangoYoun/aidlc-workshop-tableorder/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/table-login", handlers.TableLogin)
		public.POST("/auth/admin-login", handlers.AdminLogin)

		// Menu browsing needs no auth — tables scan a QR before logging in
		public.GET("/menus", handlers.GetMenus)
	}

	// ── Table session routes ───────────────────────────────────────
	session := r.Group("/api")
	session.Use(middleware.SessionRequired())
	{
		session.POST("/orders", handlers.CreateOrder)
		session.GET("/orders", handlers.GetSessionOrders)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.POST("/menus", handlers.CreateMenu)
		admin.PUT("/menus/:id", handlers.UpdateMenu)
		admin.DELETE("/menus/:id", handlers.DeleteMenu)

		admin.GET("/orders", handlers.AdminGetOrders)
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		admin.GET("/sessions", handlers.AdminGetSessions)
		admin.POST("/sessions/:id/close", handlers.AdminCloseSession)
	}
}
