package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/config"
	"github.com/hweilin/admin-console/database"
	admin_handlers "github.com/hweilin/admin-console/handlers/admin"
	auth_handlers "github.com/hweilin/admin-console/handlers/auth"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/avatar"
	"github.com/hweilin/admin-console/services/loginlog"
	"github.com/hweilin/admin-console/services/storage"
	"github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/cache"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnviornmentVariable) {
	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "admin-console-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.JWT_EXPIRY,
		Issuer: jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize blob storage for avatars
	var avatarService *avatar.Service
	if env.SPACES_ACCESS_KEY != "" && env.SPACES_BUCKET != "" {
		spacesClient, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: env.SPACES_ACCESS_KEY,
			SecretKey: env.SPACES_SECRET_KEY,
			Bucket:    env.SPACES_BUCKET,
			Region:    env.SPACES_REGION,
			Endpoint:  env.SPACES_ENDPOINT,
			CDNURL:    env.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize blob storage: %v. Avatar endpoints will be disabled.", err)
		} else {
			avatarService = avatar.NewService(db, spacesClient)
		}
	} else {
		log.Println("Warning: Spaces credentials not configured. Avatar endpoints will be disabled.")
	}

	// Initialize login audit service
	loginLogService := loginlog.NewService(db)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, loginLogService, bruteForceProtection, avatarService)
	adminHandler := admin_handlers.NewAdminHandler(db, avatarService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.InternalServerError(c, "Database unreachable")
		}
		return response.Success(c, "pong", nil)
	})

	// API group
	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Protected session routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)
	authGroup.Get("/verify", authMiddleware.Required(), authHandler.Verify)
	authGroup.Put("/change-password", authMiddleware.Required(), authHandler.ChangePassword)
	authGroup.Put("/profile", authMiddleware.Required(), authHandler.UpdateProfile)
	authGroup.Post("/avatar", authMiddleware.Required(), authHandler.UploadAvatar)
	authGroup.Delete("/avatar", authMiddleware.Required(), authHandler.DeleteAvatar)

	// Login audit trail
	authGroup.Get("/login-logs", authMiddleware.Required(), authHandler.ListLoginLogs)
	authGroup.Get("/my-login-logs", authMiddleware.Required(), authHandler.MyLoginLogs)

	// Admin management routes (protected)
	adminGroup := api.Group("/admin", authMiddleware.Required())

	// Management operations are for super admins and supervisors only;
	// staff interact with their own account through /api/auth
	manage := authMiddleware.RequireLevel(model.RoleSupervisor)
	adminGroup.Post("/create", manage, adminHandler.CreateAdmin)
	adminGroup.Get("/list", manage, adminHandler.ListAdmins)
	adminGroup.Put("/:id/password", manage, adminHandler.ResetPassword)
	adminGroup.Put("/:id/status", manage, adminHandler.ChangeStatus)
	adminGroup.Delete("/:id", manage, adminHandler.DeleteAdmin)

	// Detail, update and avatar routes are not level-gated: the
	// ownership rules in the handlers already allow self-access for
	// every tier and deny everything else.
	adminGroup.Get("/:id", adminHandler.GetAdmin)
	adminGroup.Put("/:id", adminHandler.UpdateAdmin)
	adminGroup.Post("/:id/avatar", adminHandler.UploadAvatar)
	adminGroup.Delete("/:id/avatar", adminHandler.DeleteAvatar)
}
