package api

import (
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/config"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/infra/cache"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/infra/queue"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/api/rest/handlers"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/api/rest/middleware"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/clients/google"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/services"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fixed id shared by every instance so only one of them migrates at a time
const migrateLockID int64 = 20261019

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	log.Printf("KafkaBroker=%q KafkaTopic=%q", cfg.KafkaBroker, cfg.KafkaTopic)

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	migrate(db)

	// ---------- Infra ----------
	authHelper := helper.SetupAuth(cfg.AccessSecret)

	var producer interfaces.ProducerHandler
	if p := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword); p != nil {
		producer = p
		defer p.Close()
	}
	notifier := services.NewEventNotifier(producer)

	var uploader interfaces.Uploader
	if cld, err := cloudinary.New(cfg.CloudinaryUrl); err != nil {
		log.Printf("cloudinary init error: %v (photo upload disabled)", err)
	} else {
		uploader = cloudinary.NewCloudinaryUploader(cld)
	}

	var googleClient interfaces.GoogleVerifier
	if g, err := google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.AllowedEmailDomain); err != nil {
		log.Printf("google oauth init error: %v (google login disabled)", err)
	} else {
		googleClient = g
	}

	redisClient := cache.NewRedisClient(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}
	limiter := middleware.NewFallbackLimiter(middleware.NewRedisLimiter(redisClient), middleware.NewRateLimiter())

	// ---------- Repositories ----------
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	applicantRepo := repository.NewApplicantProfileRepository(db)
	memberRepo := repository.NewMemberProfileRepository(db)
	swipeRepo := repository.NewSwipeRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	whitelistRepo := repository.NewWhitelistRepository(db)
	inviteRepo := repository.NewInviteCodeRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// ---------- Service ----------
	authSvc := services.NewAuthService(userRepo, whitelistRepo, googleClient, authHelper, cfg.AllowedEmailDomain)
	userSvc := services.NewUserService(tx, userRepo, applicantRepo, memberRepo, swipeRepo, matchRepo, messageRepo, whitelistRepo, inviteRepo, uploader)
	swipeSvc := services.NewSwipeService(tx, userRepo, applicantRepo, memberRepo, swipeRepo, matchRepo, notifier)
	matchSvc := services.NewMatchService(tx, userRepo, applicantRepo, memberRepo, matchRepo, messageRepo, auditRepo, notifier)
	messageSvc := services.NewMessageService(matchRepo, messageRepo, notifier)
	adminSvc := services.NewAdminService(tx, userRepo, applicantRepo, memberRepo, matchRepo, whitelistRepo, inviteRepo, auditRepo, cfg.AllowedEmailDomain)

	if err := authSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("seed admin error: %v", err)
	}

	// ---------- Handler ----------
	handlers.Register(app, handlers.Guards{
		Auth:    middleware.AuthMiddleware(authHelper),
		Admin:   middleware.AdminOnly(userSvc),
		Limiter: limiter,
	},
		handlers.NewAuthHandler(authSvc, cfg.FrontendURL, cfg.Env == "prod"),
		handlers.NewUserHandler(userSvc),
		handlers.NewSwipeHandler(swipeSvc),
		handlers.NewMatchHandler(matchSvc, messageSvc),
		handlers.NewAdminHandler(adminSvc, matchSvc),
	)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	if err := app.Listen(addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
	notifier.Wait()
}

// migrate holds a session level advisory lock on one pinned connection.
func migrate(db *gorm.DB) {
	err := db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return err
		}
		defer func() {
			_ = conn.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
		}()
		return repository.AutoMigrate(conn)
	})
	if err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")
}
