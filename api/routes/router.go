// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"casaroja/internal/analytics"
	"casaroja/internal/auth"
	"casaroja/internal/categories"
	"casaroja/internal/discounts"
	"casaroja/internal/events"
	"casaroja/internal/locations"
	"casaroja/internal/notifications"
	"casaroja/internal/payments"
	"casaroja/internal/shared/config"
	"casaroja/internal/shared/database"
	"casaroja/internal/tickets"
	"casaroja/internal/transport"
	"casaroja/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher

	cacheService cache.Service

	// services shared across feature wiring
	eventRepo        events.Repository
	eventService     events.Service
	discountRepo     discounts.Repository
	discountService  discounts.Service
	transportRepo    transport.Repository
	transportService transport.Service
	ticketRepo       tickets.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCategoryRoutes(api)
		r.setupLocationRoutes(api)

		// Events before discounts, transport and tickets: those feature
		// services reuse the event repository and cache invalidation
		r.setupEventRoutes(api)
		r.setupDiscountRoutes(api)
		r.setupTransportRoutes(api)
		r.setupTicketRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "casaroja-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "casaroja-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupCategoryRoutes(rg *gin.RouterGroup) {
	categoryRepo := categories.NewRepository(r.db.GetPostgreSQL())
	categoryService := categories.NewService(categoryRepo, r.cacheService)
	categoryController := categories.NewController(categoryService)

	categories.SetupCategoryRoutes(rg, categoryController)
}

func (r *Router) setupLocationRoutes(rg *gin.RouterGroup) {
	locationRepo := locations.NewRepository(r.db.GetPostgreSQL())
	locationService := locations.NewService(locationRepo, r.cacheService)
	locationController := locations.NewController(locationService)

	locations.SetupLocationRoutes(rg, locationController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	r.eventRepo = events.NewRepository(r.db.GetPostgreSQL())
	r.eventService = events.NewService(r.eventRepo, r.cacheService)
	eventController := events.NewController(r.eventService)

	events.SetupEventRoutes(rg, eventController)
}

func (r *Router) setupDiscountRoutes(rg *gin.RouterGroup) {
	r.discountRepo = discounts.NewRepository(r.db.GetPostgreSQL())
	r.discountService = discounts.NewService(r.discountRepo, r.eventRepo)
	discountController := discounts.NewController(r.discountService)

	discounts.SetupDiscountRoutes(rg, discountController)
}

func (r *Router) setupTransportRoutes(rg *gin.RouterGroup) {
	r.transportRepo = transport.NewRepository(r.db.GetPostgreSQL())
	r.transportService = transport.NewService(r.transportRepo, r.cacheService)
	transportController := transport.NewController(r.transportService)

	transport.SetupTransportRoutes(rg, transportController)
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	r.ticketRepo = tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(
		r.ticketRepo,
		r.eventRepo,
		r.eventService,
		r.discountService,
		r.transportService,
		r.publisher,
		r.config.Pricing,
	)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(
		paymentRepo,
		r.ticketRepo,
		r.eventRepo,
		r.transportRepo,
		r.discountRepo,
		payments.NewSimulatedGateway(),
		r.publisher,
		r.config.Pricing,
	)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.db.GetPostgreSQL(), r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
