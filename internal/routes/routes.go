package routes

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/audit"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/cache"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/handlers"
	infraRepo "github.com/OsamaDeghidy/A-List-Home-Pros/internal/infra/repository"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/payments"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/storage"
	ucScheduling "github.com/OsamaDeghidy/A-List-Home-Pros/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redisClient *goredis.Client, cfg *config.Config) error {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifyDispatcher := notify.NewDispatcher(db, redisClient)
	availabilityCache := cache.NewAvailabilityCache(redisClient)

	checkout, err := payments.NewCheckout(cfg)
	if err != nil {
		return err
	}
	imageStore := storage.NewImageStore(cfg)

	// ======================================================
	// USE CASES - SCHEDULING
	// ======================================================
	deps := ucScheduling.Deps{
		Repo:   schedulingRepo,
		Audit:  auditDispatcher,
		Notify: notifyDispatcher,
		Cache:  availabilityCache,
	}

	requestAppointmentUC := ucScheduling.NewRequestAppointment(deps)
	transitionAppointmentUC := ucScheduling.NewTransitionAppointment(deps)
	rescheduleAppointmentUC := ucScheduling.NewRescheduleAppointment(deps)
	getAvailabilityUC := ucScheduling.NewGetAvailability(deps)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	providerHandler := handlers.NewProviderHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, availabilityCache)
	portfolioHandler := handlers.NewPortfolioHandler(db, imageStore)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		requestAppointmentUC,
		transitionAppointmentUC,
		rescheduleAppointmentUC,
		getAvailabilityUC,
	)

	messagingHandler := handlers.NewMessagingHandler(db, notifyDispatcher)
	notificationHandler := handlers.NewNotificationHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, checkout, notifyDispatcher)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/categories", providerHandler.ListCategories)

		api.GET("/providers", providerHandler.List)
		api.GET("/providers/:id", providerHandler.Get)
		api.GET("/providers/:id/portfolio", portfolioHandler.ListByProvider)
		api.GET("/providers/:id/availability", appointmentHandler.AvailabilitySlots)

		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/appointments/:id/notes", appointmentHandler.ListNotes)
			secured.POST("/appointments/:id/notes", appointmentHandler.CreateNote)

			secured.POST("/appointments/:id/deposit", paymentHandler.CreateDeposit)

			// ------------------------------
			// MESSAGING
			// ------------------------------
			secured.GET("/conversations", messagingHandler.ListConversations)
			secured.POST("/conversations", messagingHandler.CreateConversation)
			secured.GET("/conversations/:id/messages", messagingHandler.ListMessages)
			secured.POST("/conversations/:id/messages", messagingHandler.SendMessage)
			secured.GET("/messages/unread-count", messagingHandler.UnreadCount)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications", notificationHandler.MarkAllRead)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.GET("/me/payments", paymentHandler.ListMine)

			// ------------------------------
			// PROVIDER SELF-MANAGEMENT
			// ------------------------------
			provider := secured.Group("/me/provider")
			provider.Use(middleware.RequireRole(models.RoleProvider))
			{
				provider.GET("", providerHandler.GetMine)
				provider.PATCH("", providerHandler.UpdateMine)

				provider.GET("/availability", availabilityHandler.ListWindows)
				provider.POST("/availability", availabilityHandler.CreateWindow)
				provider.PATCH("/availability/:id", availabilityHandler.UpdateWindow)
				provider.DELETE("/availability/:id", availabilityHandler.DeleteWindow)

				provider.GET("/unavailable-dates", availabilityHandler.ListUnavailableDates)
				provider.POST("/unavailable-dates", availabilityHandler.CreateUnavailableDate)
				provider.DELETE("/unavailable-dates/:id", availabilityHandler.DeleteUnavailableDate)

				provider.POST("/portfolio", portfolioHandler.Upload)
				provider.DELETE("/portfolio/:id", portfolioHandler.Delete)

				provider.GET("/stats", analyticsHandler.ProviderStats)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/analytics", analyticsHandler.Dashboard)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}
