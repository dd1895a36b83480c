package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-logistics-ws/internal/handler"
	"go-logistics-ws/internal/middleware"
	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/internal/service"
	"go-logistics-ws/internal/ws"
	"go-logistics-ws/pkg/cache"
	"go-logistics-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Inventory{},
		&model.Order{},
		&model.OrderItem{},
		&model.Delivery{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Optional Redis cache for dashboard aggregates
	dashCache := cache.New(os.Getenv("REDIS_ADDR"), "logistics:", 30*time.Second)
	if dashCache == nil {
		log.Println("Dashboard cache disabled (REDIS_ADDR unset or unreachable)")
	}

	// 6. Dependency injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	deliveryRepo := repository.NewDeliveryRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	invService := service.NewInventoryService(inventoryRepo, userRepo, productRepo, db, wsHub)
	orderService := service.NewOrderService(orderRepo, userRepo, productRepo, db, wsHub)
	deliveryService := service.NewDeliveryService(deliveryRepo, orderRepo, wsHub)
	dashService := service.NewDashboardService(orderRepo, inventoryRepo, deliveryRepo, userRepo, productRepo, dashCache)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	invHandler := handler.NewInventoryHandler(invService)
	orderHandler := handler.NewOrderHandler(orderService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Logistics Management v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetStats)

	// User management (admin-only)
	protected.Get("/users", adminOnly, userHandler.List)
	protected.Get("/users/:id", adminOnly, userHandler.Get)
	protected.Post("/users", adminOnly, userHandler.Create)
	protected.Put("/users/:id", adminOnly, userHandler.Update)
	protected.Delete("/users/:id", adminOnly, userHandler.Delete)

	// Products (catalog management is admin-only; everyone reads)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.Get)
	protected.Post("/products", adminOnly, productHandler.Create)
	protected.Put("/products/:id", adminOnly, productHandler.Update)
	protected.Delete("/products/:id", adminOnly, productHandler.Delete)

	// Inventory ledger
	protected.Get("/inventory", invHandler.List)
	protected.Get("/inventory/low-stock", invHandler.LowStock)
	protected.Get("/inventory/:id", invHandler.Get)
	protected.Post("/inventory", adminOnly, invHandler.Create)
	protected.Post("/inventory/reserve", invHandler.Reserve)
	protected.Post("/inventory/release", invHandler.Release)
	protected.Put("/inventory/:id", adminOnly, invHandler.Update)
	protected.Delete("/inventory/:id", adminOnly, invHandler.Delete)

	// Orders and order items
	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Put("/orders/:id", orderHandler.Update)
	protected.Delete("/orders/:id", orderHandler.Delete)
	protected.Post("/orders/:id/items", orderHandler.AddItem)
	protected.Get("/orders/:id/items", orderHandler.ListItems)
	protected.Delete("/orders/items/:itemId", orderHandler.RemoveItem)
	protected.Post("/orders/:id/recalculate", orderHandler.Recalculate)

	// Deliveries (managed by admins; clients read their own)
	protected.Get("/deliveries", deliveryHandler.List)
	protected.Get("/deliveries/:id", deliveryHandler.Get)
	protected.Get("/deliveries/order/:orderId", deliveryHandler.GetByOrder)
	protected.Post("/deliveries", adminOnly, deliveryHandler.Create)
	protected.Put("/deliveries/:id", adminOnly, deliveryHandler.Update)
	protected.Delete("/deliveries/:id", adminOnly, deliveryHandler.Delete)

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:     email,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", email)
	}
}
