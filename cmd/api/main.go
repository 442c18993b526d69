package main

import (
	"context"
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
	"golang.org/x/time/rate"

	"resumepro/resume-analyzer/internal/config"
	"resumepro/resume-analyzer/internal/handlers"
	"resumepro/resume-analyzer/internal/repositories"
	"resumepro/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Pick the rating store: hosted store first, then local postgres,
	// otherwise persistence is silently disabled.
	feedbackStore := services.NewDisabledFeedbackStore()
	var prefRepo repositories.PreferenceRepository = repositories.NewMemoryPreferenceRepository()

	switch {
	case cfg.SupabaseConfigured():
		store, err := services.NewSupabaseFeedbackStore(cfg.Supabase.URL, cfg.Supabase.Key)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Supabase store: %v", err)
		} else {
			feedbackStore = store
			log.Println("✅ Supabase rating store initialized")
		}
	case cfg.DatabaseConfigured():
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Printf("⚠️  Failed to initialize database, ratings disabled: %v", err)
		} else {
			feedbackStore = services.NewPostgresFeedbackStore(repositories.NewRatingRepository(db))
			prefRepo = repositories.NewPreferenceRepository(db)
			log.Println("✅ Postgres rating store initialized")
		}
	default:
		log.Println("⚠️  No rating store configured, feedback persistence disabled")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. A missing key keeps the server up; analysis
	// requests are rejected with a dedicated message until it is set.
	var analyzer services.AnalyzerService
	hasAPIKey := cfg.Gemini.APIKey != ""
	if hasAPIKey {
		geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		analyzer = services.NewAnalyzerService(geminiService, geminiService)
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, analysis requests will be rejected")
	}

	// Initialize sessions
	sessionManager := services.NewSessionManager(
		feedbackStore,
		cfg.Feedback.PromptDelay,
		cfg.Feedback.SessionIdleTTL,
	)
	sessionManager.Start(context.Background())
	log.Println("✅ Session manager started successfully")

	// Initialize handlers
	limiter := rate.NewLimiter(rate.Limit(cfg.Analyze.RequestsPerMinute/60), cfg.Analyze.Burst)
	sessionHandler := handlers.NewSessionHandler(sessionManager)
	analyzeHandler := handlers.NewAnalyzeHandler(sessionManager, analyzer, limiter, hasAPIKey)
	ratingHandler := handlers.NewRatingHandler(sessionManager)
	exportHandler := handlers.NewExportHandler(sessionManager)
	uploadHandler := handlers.NewUploadHandler(storageService, pdfParser, cfg.Storage.MaxFileSize)
	preferenceHandler := handlers.NewPreferenceHandler(prefRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI ResumePro API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/sessions", sessionHandler.HandleCreate)
	api.Get("/sessions/:id", sessionHandler.HandleGet)
	api.Post("/sessions/:id/view", sessionHandler.HandleNavigate)
	api.Post("/sessions/:id/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/sessions/:id/rating", ratingHandler.HandleSubmit)
	api.Post("/sessions/:id/rating/skip", ratingHandler.HandleSkip)
	api.Get("/sessions/:id/cover-letter", exportHandler.HandleCoverLetterDownload)
	api.Get("/sessions/:id/cold-email", exportHandler.HandleColdEmail)
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Get("/preferences/:key", preferenceHandler.HandleGet)
	api.Put("/preferences/:key", preferenceHandler.HandleSet)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI ResumePro API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"POST /api/v1/sessions/:id/analyze",
				"POST /api/v1/sessions/:id/rating",
				"POST /api/v1/upload",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sessionManager.Stop()
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
