package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"designmatch_backend/internal/auth"
	"designmatch_backend/internal/cache"
	"designmatch_backend/internal/config"
	"designmatch_backend/internal/email"
	"designmatch_backend/internal/handlers"
	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/middleware"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/payments"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/routes"
	"designmatch_backend/internal/services"
	"designmatch_backend/internal/storage"
	"designmatch_backend/internal/validator"
	"designmatch_backend/internal/workers"
	"designmatch_backend/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, cache, services, handlers, workers and
// routes onto a gin engine. Split out of Run so the integration tests
// can build the full router against their own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:        cfg.Storage.Type,
		BasePath:    cfg.Storage.BasePath,
		BaseURL:     cfg.Storage.BaseURL,
		Bucket:      cfg.Storage.Bucket,
		Region:      cfg.Storage.Region,
		AccessKey:   cfg.Storage.AccessKey,
		SecretKey:   cfg.Storage.SecretKey,
		Endpoint:    cfg.Storage.Endpoint,
		SupabaseURL: cfg.Storage.SupabaseURL,
		ServiceKey:  cfg.Storage.ServiceKey,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	discoveryCache := initializeCache(cfg)

	serviceContainer, wsManager, paymentWorkerDeps := initializeServices(cfg, gormDB, storageInstance, discoveryCache)

	go wsManager.Run()
	wsHandler := ws.NewWebSocketHandler(wsManager)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	startWorkers(context.Background(), paymentWorkerDeps, serviceContainer)

	return ginRouter
}

// paymentWorkerInput carries what the background workers need beyond
// the service container.
type paymentWorkerInput struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
}

func initializeCache(cfg *config.Config) *cache.DiscoveryCache {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis not configured, discovery cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, discovery cache disabled", "addr", cfg.Redis.Addr, "error", err)
		return nil
	}

	logger.Info("Discovery cache enabled", "addr", cfg.Redis.Addr)
	return cache.NewDiscoveryCache(client, time.Duration(cfg.Redis.TTL)*time.Second)
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	storageInstance storage.Storage,
	discoveryCache *cache.DiscoveryCache,
) (*services.ServiceContainer, *ws.WebSocketManager, paymentWorkerInput) {

	emailProvider, providerName := initializeEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	projectRepo := repositories.NewProjectRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	deliverableRepo := repositories.NewDeliverableRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	stripeClient := payments.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.Currency)

	emailService := services.NewEmailService(emailProvider, providerName)
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, profileRepo, emailService)
	profileService := services.NewProfileService(profileRepo, userRepo, discoveryCache)
	discoveryService := services.NewDiscoveryService(profileRepo, discoveryCache)
	projectService := services.NewProjectService(projectRepo, profileRepo, deliverableRepo, messageRepo, notificationService)
	deliverableService := services.NewDeliverableService(deliverableRepo, projectRepo, messageRepo, storageInstance, notificationService)
	paymentService := services.NewPaymentService(paymentRepo, projectRepo, stripeClient, notificationService)
	dashboardService := services.NewDashboardService(projectRepo, paymentRepo)

	wsManager := ws.NewWebSocketManager(projectService)
	messageService := services.NewMessageService(messageRepo, projectRepo, storageInstance, notificationService, wsManager)
	wsManager.SetMessageService(messageService)

	container := &services.ServiceContainer{
		AuthService:         authService,
		ProfileService:      profileService,
		DiscoveryService:    discoveryService,
		ProjectService:      projectService,
		DeliverableService:  deliverableService,
		PaymentService:      paymentService,
		MessageService:      messageService,
		NotificationService: notificationService,
		DashboardService:    dashboardService,
		EmailService:        emailService,
	}

	return container, wsManager, paymentWorkerInput{paymentRepo: paymentRepo, userRepo: userRepo}
}

func initializeEmailProvider(cfg *config.Config) (email.Provider, string) {
	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	emailCfg := email.DefaultConfig()
	emailCfg.SMTPHost = cfg.Email.SMTPHost
	emailCfg.SMTPPort = cfg.Email.SMTPPort
	emailCfg.Username = cfg.Email.SMTPUsername
	emailCfg.Password = cfg.Email.SMTPPassword
	emailCfg.ResendAPIKey = cfg.Email.ResendAPIKey
	emailCfg.ResendDomain = cfg.Email.ResendDomain
	emailCfg.FromEmail = cfg.Email.FromEmail
	emailCfg.FromName = cfg.Email.FromName

	switch cfg.Email.Provider {
	case "resend":
		provider := email.NewResendProvider(emailCfg, templates)
		if err := provider.Validate(); err != nil {
			logger.Fatal("Resend provider misconfigured", "error", err)
		}
		return provider, "resend"
	case "smtp":
		provider := email.NewSMTPProvider(emailCfg, templates)
		if err := provider.Validate(); err != nil {
			logger.Fatal("SMTP provider misconfigured", "error", err)
		}
		return provider, "smtp"
	default:
		logger.Warn("No email provider configured, outgoing email is discarded")
		return &MockEmailProvider{}, "mock"
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, container.ProfileService),
		DiscoveryHandler:    handlers.NewDiscoveryHandler(baseHandler, container.DiscoveryService),
		ProjectHandler:      handlers.NewProjectHandler(baseHandler, container.ProjectService),
		DeliverableHandler:  handlers.NewDeliverableHandler(baseHandler, container.DeliverableService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, container.PaymentService),
		MessageHandler:      handlers.NewMessageHandler(baseHandler, container.MessageService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		DashboardHandler:    handlers.NewDashboardHandler(baseHandler, container.DashboardService),
		EmailHandler:        handlers.NewEmailHandler(baseHandler, container.EmailService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.DBMiddleware(db))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if cfg.Storage.Type == "local" {
		router.Static("/files", cfg.Storage.BasePath)
	}

	return router
}

func startWorkers(ctx context.Context, deps paymentWorkerInput, container *services.ServiceContainer) {
	paymentWorker := workers.NewPaymentWorker(deps.paymentRepo, container.PaymentService)
	paymentWorker.Start(ctx)

	tokenWorker := workers.NewTokenWorker(deps.userRepo)
	tokenWorker.Start(ctx)

	logger.Info("Background workers started")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.UserProfile{},
		&models.Project{},
		&models.Deliverable{},
		&models.Payment{},
		&models.Message{},
		&models.Notification{},
	)
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		UserType:     models.UserTypeAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	adminProfile := &models.UserProfile{
		UserID:   newAdmin.ID,
		UserType: models.UserTypeAdmin,
		FullName: "Platform Administrator",
		Email:    adminEmail,
	}
	if err := tx.Create(adminProfile).Error; err != nil {
		return fmt.Errorf("failed to create admin profile: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit admin seed: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
