package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"resumecraft/resume-tailor/internal/config"
	"resumecraft/resume-tailor/internal/handlers"
	"resumecraft/resume-tailor/internal/repositories"
	"resumecraft/resume-tailor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	extractor := services.NewExtractorService()
	exporter := services.NewExporterService()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	analyzer := services.NewAnalyzerService(geminiService)
	log.Println("✅ Services initialized successfully")

	// Session store; identity and the staged analysis hand-off both live here
	sessionStore := session.New(session.Config{
		Expiration:     cfg.Session.Expiration,
		CookieHTTPOnly: true,
	})
	sessions := handlers.NewSessionManager(sessionStore)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(extractor, analyzer, resumeRepo, sessions, cfg.Upload.MaxFileSize)
	coverLetterHandler := handlers.NewCoverLetterHandler(analyzer, sessions)
	exportHandler := handlers.NewExportHandler(exporter)
	authHandler := handlers.NewAuthHandler(userRepo, sessions)
	dashboardHandler := handlers.NewDashboardHandler(resumeRepo, sessions)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Tailor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Core workflow
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/workflow", analyzeHandler.HandleWorkflow)
	api.Post("/cover-letter", coverLetterHandler.HandleGenerateCoverLetter)
	api.Post("/export/docx", exportHandler.HandleExportDocx)

	// Auth
	api.Post("/register", authHandler.HandleRegister)
	api.Post("/login", authHandler.HandleLogin)
	api.Post("/logout", authHandler.HandleLogout)

	// Dashboard
	api.Get("/resumes", dashboardHandler.HandleListResumes)
	api.Delete("/resumes/:id", dashboardHandler.HandleDeleteResume)
	api.Get("/analyses/:id", dashboardHandler.HandleGetAnalysis)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Tailor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/analyze",
				"POST /api/cover-letter",
				"POST /api/export/docx",
				"GET /api/resumes",
				"GET /api/analyses/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
