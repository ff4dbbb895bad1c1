// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"veridesk/internal/handlers"
	"veridesk/internal/middleware"
	"veridesk/internal/models"
	"veridesk/internal/repositories"
	"veridesk/internal/services/auth"
	"veridesk/internal/services/bank"
	"veridesk/internal/services/document"
	"veridesk/internal/services/kyc"
	"veridesk/internal/services/notification"
	"veridesk/internal/services/ocr"
	"veridesk/internal/services/onboarding"
	"veridesk/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Deps carries the externally constructed pieces the router needs:
// the OCR engine stack, the partner bank configuration, the task
// queue client and the upload directory.
type Deps struct {
	OCRService  ocr.Service
	BankConfig  bank.Config
	AsynqClient *asynq.Client
	UploadDir   string
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	// Initialize repositories
	profileRepo := repositories.NewProfileRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize auth service and handler
	authService := auth.NewService()
	authHandler := handlers.NewAuthHandler(authService)

	userService := user.NewService()
	userHandler := handlers.NewUserHandler(userService)

	// Document extraction pipeline
	analyzer := document.NewService(document.DefaultPenalties)
	pipeline := document.NewPipeline(deps.OCRService, analyzer, documentRepo)

	// Notifications ride the task queue; without a client they are
	// dropped silently.
	var notifier notification.Service
	if deps.AsynqClient != nil {
		notifier = notification.NewService(deps.AsynqClient)
	}

	bankService := bank.NewClient(deps.BankConfig)

	onboardingService := onboarding.NewService(
		profileRepo,
		documentRepo,
		auditRepo,
		bankService,
		notifier,
		repositories.CacheService,
	)

	kycService := kyc.NewService(kycRepo)

	onboardingHandler := handlers.NewOnboardingHandler(
		onboardingService,
		pipeline,
		kycService,
		documentRepo,
		notificationRepo,
		deps.UploadDir,
	)
	reviewHandler := handlers.NewReviewHandler(onboardingService, kycService, documentRepo)
	adminHandler := handlers.NewAdminHandler(onboardingService)

	// Public routes
	api := app.Group("/api")

	api.Post("/login", authHandler.LoginUser)
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/refresh", authHandler.RefreshToken)
	app.Get("/health", handlers.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to VeriDesk API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	// Create middleware instance
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	protected.Get("/me", userHandler.GetCurrentUser)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/logout", authHandler.LogoutUser)

	setupOnboardingRoutes(protected, onboardingHandler)
	setupReviewRoutes(protected, reviewHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler, reviewHandler)
}

func setupOnboardingRoutes(router fiber.Router, h *handlers.OnboardingHandler) {
	ob := router.Group("/onboarding", middleware.RequireRole(models.RoleMerchant))

	// Profile wizard
	ob.Get("/profile", middleware.HasPermission(models.PermissionProfileRead), h.GetProfile)
	ob.Put("/profile", middleware.HasPermission(models.PermissionProfileWrite), h.SaveProfile)
	ob.Post("/submit", middleware.HasPermission(models.PermissionProfileWrite), h.Submit)

	// Document extraction
	ob.Post("/documents", middleware.HasPermission(models.PermissionDocumentUpload), h.UploadDocument)
	ob.Get("/documents", middleware.HasPermission(models.PermissionProfileRead), h.ListDocuments)

	// Video KYC steps
	kycGroup := ob.Group("/kyc", middleware.HasPermission(models.PermissionKYCWrite))
	kycGroup.Post("/video-complete", h.CompleteVideoKYC)
	kycGroup.Post("/location", h.CaptureLocation)
	kycGroup.Post("/selfie", h.UploadSelfie)
	ob.Get("/kyc", middleware.HasPermission(models.PermissionProfileRead), h.KYCStatus)

	// Notification inbox
	ob.Get("/notifications", h.ListNotifications)
}

func setupReviewRoutes(router fiber.Router, h *handlers.ReviewHandler) {
	review := router.Group("/review")

	// Support portal: first-line document and profile checks
	support := review.Group("/support", middleware.HasPermission(models.PermissionReviewSupport))
	support.Get("/applications", h.ListSupportQueue)
	support.Get("/applications/:id", h.GetApplication)
	support.Post("/applications/:id/validate", h.ValidateApplication)
	support.Post("/applications/:id/submit-to-bank", h.ForwardToBank)

	// Bank portal: final verdict on forwarded applications
	bankGroup := review.Group("/bank", middleware.HasPermission(models.PermissionReviewBank))
	bankGroup.Get("/applications", h.ListBankQueue)
	bankGroup.Get("/applications/:id", h.GetApplication)
	bankGroup.Post("/applications/:id/approve", h.ApproveApplication)
	bankGroup.Post("/applications/:id/reject", h.RejectApplication)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, h *handlers.AdminHandler, review *handlers.ReviewHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/merchants", middleware.HasPermission(models.PermissionReadAdmin), h.ListMerchants)
	admin.Get("/merchants/export", middleware.HasPermission(models.PermissionReadAdmin), h.ExportMerchants)
	admin.Get("/merchants/:id", middleware.HasPermission(models.PermissionReadAdmin), h.GetMerchant)
	admin.Get("/merchants/:id/audit", middleware.HasPermission(models.PermissionReadAdmin), h.GetAuditTrail)
	admin.Get("/stats", middleware.HasPermission(models.PermissionReadAdmin), h.GetStats)

	// Admins can drive any transition
	admin.Post("/merchants/:id/validate", middleware.HasPermission(models.PermissionWriteAdmin), review.ValidateApplication)
	admin.Post("/merchants/:id/submit-to-bank", middleware.HasPermission(models.PermissionWriteAdmin), review.ForwardToBank)
	admin.Post("/merchants/:id/approve", middleware.HasPermission(models.PermissionWriteAdmin), review.ApproveApplication)
	admin.Post("/merchants/:id/manual-approve", middleware.HasPermission(models.PermissionWriteAdmin), h.ManualApprove)
	admin.Post("/merchants/:id/reject", middleware.HasPermission(models.PermissionWriteAdmin), review.RejectApplication)
	admin.Delete("/merchants/:id", middleware.HasPermission(models.PermissionWriteAdmin), h.DeleteMerchant)
}
