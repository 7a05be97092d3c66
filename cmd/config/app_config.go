package config

import (
	"os"
	"time"

	"foodplan-backend/internal/api/handlers"
	"foodplan-backend/internal/api/routes"
	"foodplan-backend/internal/middleware"
	"foodplan-backend/internal/utils"
	"foodplan-backend/internal/utils/storage"
	"foodplan-backend/pkg/catalog"
	"foodplan-backend/pkg/jwt"
	"foodplan-backend/pkg/menu"
	"foodplan-backend/pkg/payment"
	"foodplan-backend/pkg/profile"
	"foodplan-backend/pkg/subscription"
	"foodplan-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	gateway := payment.NewPaymentGateway(utils.LoadPaymentConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	profileRepository := profile.NewProfileRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	catalogService := catalog.NewCatalogService(catalogRepository)
	userService := user.NewUserService(userRepository, profileRepository, catalogService, jwtService)
	profileService := profile.NewProfileService(profileRepository, catalogService, s3)
	menuService := menu.NewMenuService(profileRepository, catalogRepository)
	subscriptionService := subscription.NewSubscriptionService(
		subscriptionRepository,
		profileRepository,
		userRepository,
		catalogService,
		gateway,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	profileHandler := handlers.NewProfileHandler(profileService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	menuHandler := handlers.NewMenuHandler(menuService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		ProfileHandler:      profileHandler,
		CatalogHandler:      catalogHandler,
		MenuHandler:         menuHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
