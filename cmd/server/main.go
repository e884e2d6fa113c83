package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/pairconnect/pair-connect-api/internal/config"
	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/database"
	"github.com/pairconnect/pair-connect-api/internal/handlers"
	"github.com/pairconnect/pair-connect-api/internal/mailer"
	"github.com/pairconnect/pair-connect-api/internal/middleware"
	"github.com/pairconnect/pair-connect-api/internal/repository"
	"github.com/pairconnect/pair-connect-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	skillRepo := repository.NewSkillRepository(db)

	// Mail delivery falls back to logging when no relay is configured
	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	} else {
		mail = mailer.NewNoopMailer()
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, skillRepo)
	projectService := services.NewProjectService(projectRepo, skillRepo)
	sessionService := services.NewSessionService(sessionRepo, projectRepo, userRepo, skillRepo)
	developerSuggestions := services.NewDeveloperSuggestionService(userRepo, sessionRepo)
	sessionSuggestions := services.NewSessionSuggestionService(sessionRepo)
	notificationService := services.NewNotificationService(mail, cfg.FrontendBaseURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	sessionHandler := handlers.NewSessionHandler(
		sessionService, developerSuggestions, sessionSuggestions, notificationService, authService)
	skillsHandler := handlers.NewSkillsHandler(skillRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Pair Connect API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Skill lookup tables (protected)
		skills := api.Group("/skills")
		skills.Use(middleware.RequireAuth())
		{
			skills.GET("/levels", skillsHandler.ListLevels)
			skills.GET("/languages", skillsHandler.ListLanguages)
			skills.GET("/stacks", skillsHandler.ListStacks)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/me/profile", authHandler.GetCurrentUser)
			users.PUT("/me/profile", authHandler.UpdateProfile)
			users.GET("/me/projects", projectHandler.ListOwnProjects)
			users.GET("/me/sessions", sessionHandler.ListHostedSessions)
			users.GET("/me/interested-sessions", sessionHandler.ListInterestedSessions)
			users.GET("/me/participating-sessions", sessionHandler.ListParticipatingSessions)
			users.GET("/suggested-sessions", sessionHandler.SuggestedSessions)
			users.GET("/:id", authHandler.GetDeveloper)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), projectHandler.DeleteProject)
			projects.GET("/:id/sessions", middleware.RequireProjectAccess(), sessionHandler.ListProjectSessions)
		}

		// Session routes (protected)
		sessions := api.Group("/sessions")
		sessions.Use(middleware.RequireAuth())
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", middleware.RequireSessionAccess(), sessionHandler.GetSession)
			sessions.PATCH("/:id", middleware.RequireSessionAccess(), sessionHandler.UpdateSession)
			sessions.DELETE("/:id", middleware.RequireSessionAccess(), sessionHandler.DeleteSession)
			sessions.GET("/:id/suggested-developers", middleware.RequireSessionAccess(), sessionHandler.SuggestedDevelopers)
			sessions.POST("/:id/developers/:developer_id/invite", middleware.RequireSessionAccess(), sessionHandler.InviteDeveloper)
			sessions.POST("/:id/express-interest", middleware.RequireSessionAccess(), sessionHandler.ExpressInterest)
			sessions.POST("/:id/confirm-participant", middleware.RequireSessionAccess(), sessionHandler.ConfirmParticipant)
			sessions.GET("/:id/check-interest", middleware.RequireSessionAccess(), sessionHandler.CheckInterest)
			sessions.GET("/:id/check-participation", middleware.RequireSessionAccess(), sessionHandler.CheckParticipation)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
