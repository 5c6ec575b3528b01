package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bizflow-backend/internal/config"
	"bizflow-backend/internal/handler"
	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/model"
	"bizflow-backend/internal/notifier"
	"bizflow-backend/internal/repository"
	"bizflow-backend/internal/service"
	"bizflow-backend/internal/ws"
	"bizflow-backend/pkg/database"
	"bizflow-backend/pkg/password"
	"bizflow-backend/pkg/token"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.Connect(cfg.DatabaseDSN)
	db.AutoMigrate(
		&model.User{},
		&model.InventoryItem{},
		&model.InventoryTransaction{},
		&model.Project{},
		&model.Task{},
		&model.TimeEntry{},
		&model.FinancialRecord{},
		&model.AccountingEntry{},
	)

	hasher := password.NewHasher()
	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL)

	// 3. Seed default admin user
	seedAdmin(db, hasher)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	itemRepo := repository.NewInventoryItemRepo(db)
	txRepo := repository.NewInventoryTransactionRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	timeEntryRepo := repository.NewTimeEntryRepo(db)
	financialRepo := repository.NewFinancialRecordRepo(db)
	accountingRepo := repository.NewAccountingEntryRepo(db)

	mailer := notifier.New()

	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher)
	invService := service.NewInventoryService(itemRepo, txRepo, db, wsHub)
	taskService := service.NewTaskService(taskRepo, mailer)
	timeService := service.NewTimeEntryService(timeEntryRepo)
	reportService := service.NewReportService(financialRepo, taskRepo, itemRepo, accountingRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	invHandler := handler.NewInventoryHandler(invService)
	projectHandler := handler.NewProjectHandler(projectRepo, taskRepo, taskService)
	taskHandler := handler.NewTaskHandler(taskService)
	timeHandler := handler.NewTimeEntryHandler(timeService)
	financialHandler := handler.NewFinancialHandler(financialRepo)
	accountingHandler := handler.NewAccountingHandler(accountingRepo)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "BizFlow API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes

	// ============ PUBLIC ROUTES ============
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
		}
		return c.JSON(fiber.Map{"status": "healthy", "database": "connected"})
	})

	app.Post("/auth/login", authHandler.Login)
	app.Post("/users", userHandler.Register)

	// ============ PROTECTED ROUTES ============
	protected := app.Group("", middleware.RequireAuth(tokens, userRepo))

	protected.Get("/users/me", userHandler.Me)

	// Inventory. Literal routes first so they are not shadowed by /:id.
	inv := protected.Group("/inventory")
	inv.Post("/transactions", invHandler.CreateTransaction)
	inv.Get("/transactions", invHandler.ListTransactions)
	inv.Get("/transactions/:item_id", invHandler.ListItemTransactions)
	inv.Get("/low-stock", invHandler.LowStock)
	inv.Post("/", invHandler.CreateItem)
	inv.Get("/", invHandler.ListItems)
	inv.Get("/:id", invHandler.GetItem)
	inv.Put("/:id/quantity", middleware.RequireRole(model.RoleAdmin), invHandler.OverrideQuantity)
	inv.Put("/:id", invHandler.UpdateItem)
	inv.Delete("/:id", invHandler.DeleteItem)

	// Projects
	projects := protected.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Get("/:id/tasks", projectHandler.ListTasks)
	projects.Post("/:id/tasks", projectHandler.CreateTask)
	projects.Get("/:id/progress", projectHandler.Progress)

	// Tasks
	tasks := protected.Group("/tasks")
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	// Time tracking
	protected.Post("/time-entries", timeHandler.Log)
	protected.Get("/time-entries", timeHandler.ListMine)

	// Financial records
	protected.Post("/financial-records", financialHandler.Create)
	protected.Get("/financial-records", financialHandler.List)

	// Accounting
	accounting := protected.Group("/accounting")
	accounting.Post("/", accountingHandler.Create)
	accounting.Get("/", accountingHandler.List)
	accounting.Get("/by-task/:task_id", accountingHandler.ListByTask)
	accounting.Get("/by-project/:project_id", accountingHandler.ListByProject)

	// Reports
	reports := protected.Group("/reports")
	reports.Get("/financial-summary", reportHandler.FinancialSummary)
	reports.Get("/task-status-count", reportHandler.TaskStatusCount)
	reports.Get("/inventory-snapshot", reportHandler.InventorySnapshot)
	reports.Get("/summary/by-project", reportHandler.AccountingByProject)
	reports.Get("/summary/by-task", reportHandler.AccountingByTask)

	// WebSocket Route
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

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
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

// seedAdmin creates the default admin account if it does not exist yet.
func seedAdmin(db *gorm.DB, hasher *password.Hasher) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	plaintext := os.Getenv("ADMIN_PASSWORD")
	if plaintext == "" {
		plaintext = "Admin1234"
		log.Println("WARNING: ADMIN_PASSWORD is not set, seeding admin with the default password. Change it immediately!")
	}

	hash, err := hasher.Hash(plaintext)
	if err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}
