package app

import (
	"database/sql"
	"fmt"
	"log"

	"pipetrack/internal/config"
	"pipetrack/internal/handlers"
	"pipetrack/internal/middleware"
	"pipetrack/internal/pdf"
	"pipetrack/internal/repositories"
	"pipetrack/internal/routes"
	"pipetrack/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	leadRepo := repositories.NewLeadRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	leadService := services.NewLeadService(leadRepo, orderRepo)
	orderService := services.NewOrderService(orderRepo, leadRepo, emailService)
	reportService := services.NewReportService(leadRepo, orderRepo)

	// One draft buffer shared by lead and order handlers
	pendingEdits := services.NewPendingEdits()

	// Receipt PDF generator
	pdfGen := pdf.NewReceiptGenerator(cfg.Files.RootDir)

	// === Handlers ===
	leadHandler := handlers.NewLeadHandler(leadService, pendingEdits)
	orderHandler := handlers.NewOrderHandler(orderService, pendingEdits, pdfGen)
	receiptHandler := handlers.NewReceiptHandler(emailService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.Metrics())

	routes.SetupRoutes(
		router,
		leadHandler,
		orderHandler,
		receiptHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
