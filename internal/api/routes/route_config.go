package routes

import (
	"foodplan-backend/internal/api/handlers"
	"foodplan-backend/internal/middleware"
	"foodplan-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	ProfileHandler      handlers.ProfileHandler
	CatalogHandler      handlers.CatalogHandler
	MenuHandler         handlers.MenuHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Profile()
	c.Catalog()
	c.Menu()
	c.Subscription()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware(c.JWTService))
	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Patch("", c.ProfileHandler.UpdateProfile)
	profile.Post("/avatar", c.ProfileHandler.UploadAvatar)
}

func (c *Config) Catalog() {
	catalog := c.App.Group("/api/v1/catalog")
	catalog.Get("/dishes", c.CatalogHandler.GetDishes)
	catalog.Get("/dishes/:id", c.CatalogHandler.GetDishDetails)
	catalog.Get("/diet-types", c.CatalogHandler.GetDietTypes)
	catalog.Get("/allergies", c.CatalogHandler.GetAllergies)
}

func (c *Config) Menu() {
	menu := c.App.Group("/api/v1/menu", c.Middleware.AuthMiddleware(c.JWTService))
	menu.Get("/daily", c.MenuHandler.GetDailyMenu)
}

func (c *Config) Subscription() {
	subscription := c.App.Group("/api/v1/subscriptions", c.Middleware.AuthMiddleware(c.JWTService))
	subscription.Post("/checkout", c.SubscriptionHandler.Checkout)
	subscription.Get("/orders", c.SubscriptionHandler.GetOrders)
	subscription.Get("/orders/:id", c.SubscriptionHandler.GetOrder)
	subscription.Post("/orders/:id/confirm", c.SubscriptionHandler.Confirm)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/payment", c.SubscriptionHandler.PaymentWebhook)
}
