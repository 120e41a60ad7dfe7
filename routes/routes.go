package routes

import (
	"github.com/gin-gonic/gin"

	"fleetrental/controllers"
	"fleetrental/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine) {
	// Public routes (no authentication required)
	public := r.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/register", controllers.Register)
		}
	}

	// Protected routes (authentication required)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/refresh", controllers.RefreshToken)

		protected.GET("/profile", controllers.GetUserProfile)
		protected.POST("/profile/change-password", controllers.ChangePassword)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard", controllers.AdminDashboard)
		}

		// Vehicles
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", controllers.GetVehicles)
			vehicles.GET("/available", controllers.GetAvailableVehicles)
			vehicles.GET("/:id", controllers.GetVehicleByID)
			vehicles.POST("", middleware.ManagerAuthMiddleware(), controllers.CreateVehicle)
			vehicles.PUT("/:id", middleware.ManagerAuthMiddleware(), controllers.UpdateVehicle)
			vehicles.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteVehicle)
		}

		// Customers
		customers := protected.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomerByID)
			customers.POST("", middleware.ManagerAuthMiddleware(), controllers.CreateCustomer)
			customers.PUT("/:id", middleware.ManagerAuthMiddleware(), controllers.UpdateCustomer)
			customers.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteCustomer)
		}

		// Contracts
		contracts := protected.Group("/contracts")
		{
			contracts.GET("", controllers.GetContracts)
			contracts.GET("/:id", controllers.GetContractByID)
			contracts.POST("", middleware.ManagerAuthMiddleware(), controllers.CreateContract)
			contracts.POST("/check-conflicts", controllers.CheckContractConflicts)
			contracts.PUT("/:id", middleware.ManagerAuthMiddleware(), controllers.UpdateContract)
			contracts.POST("/:id/finalize", middleware.ManagerAuthMiddleware(), controllers.FinalizeContract)
			contracts.POST("/:id/cancel", middleware.ManagerAuthMiddleware(), controllers.CancelContract)
			contracts.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteContract)
		}

		// Inspections
		inspections := protected.Group("/inspections")
		{
			inspections.GET("", controllers.GetInspections)
			inspections.GET("/statistics", controllers.GetInspectionStatistics)
			inspections.GET("/:id", controllers.GetInspectionByID)
			inspections.POST("", middleware.InspectorAuthMiddleware(), controllers.CreateInspection)
		}

		// Costs
		costs := protected.Group("/costs")
		{
			costs.GET("", controllers.GetCosts)
			costs.GET("/:id", controllers.GetCostByID)
			costs.POST("", middleware.ManagerAuthMiddleware(), controllers.CreateCost)
			costs.POST("/:id/authorize", middleware.ManagerAuthMiddleware(), controllers.AuthorizeCost)
			costs.POST("/:id/pay", middleware.ManagerAuthMiddleware(), controllers.MarkCostPaid)
			costs.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteCost)
		}

		// Suppliers
		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", controllers.GetSuppliers)
			suppliers.GET("/:id", controllers.GetSupplierByID)
			suppliers.POST("", middleware.ManagerAuthMiddleware(), controllers.CreateSupplier)
			suppliers.PUT("/:id", middleware.ManagerAuthMiddleware(), controllers.UpdateSupplier)
			suppliers.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteSupplier)
		}

		// Parts inventory
		parts := protected.Group("/parts")
		{
			parts.GET("", controllers.GetParts)
			parts.GET("/:id", controllers.GetPartByID)
			parts.POST("", middleware.ManagerAuthMiddleware(), controllers.CreatePart)
			parts.PUT("/:id", middleware.ManagerAuthMiddleware(), controllers.UpdatePart)
			parts.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeletePart)
		}

		// Purchase orders
		purchaseOrders := protected.Group("/purchase-orders")
		{
			purchaseOrders.GET("", controllers.GetPurchaseOrders)
			purchaseOrders.GET("/:id", controllers.GetPurchaseOrderByID)
			purchaseOrders.POST("", middleware.ManagerAuthMiddleware(), controllers.CreatePurchaseOrder)
			purchaseOrders.PUT("/:id/status", middleware.ManagerAuthMiddleware(), controllers.UpdatePurchaseOrderStatus)
		}

		// Payments
		payments := protected.Group("/payments")
		{
			payments.POST("/generate-order", middleware.ManagerAuthMiddleware(), controllers.GenerateCostPayment)
			payments.POST("/verify", middleware.ManagerAuthMiddleware(), controllers.VerifyCostPayment)
			payments.GET("", controllers.GetPayments)
		}

		// Notifications
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", controllers.GetMyNotifications)
			notifications.POST("/:id/read", controllers.MarkNotificationRead)
		}
	}
}
