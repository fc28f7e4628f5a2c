package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	APIPrefix      string
	MaxUploadSize  int
	LoginRateLimit int
	AccessLog      bool

	// LimiterStorage holds rate limit counters; nil keeps them in memory.
	LimiterStorage fiber.Storage
}

// NewRouter builds the fiber application with every route mounted.
func NewRouter(cfg RouterConfig, h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		BodyLimit:             cfg.MaxUploadSize,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New())
	app.Use(AuthMiddleware(h.auth, PublicRoutes(cfg.APIPrefix)))

	app.Get("/health", h.Health)
	app.Get("/public/uploads/*", h.ServeUpload)

	v1 := app.Group(cfg.APIPrefix)

	products := v1.Group("/products")
	products.Get("/get/count", h.CountProducts)
	products.Get("/get/featured/:count?", h.FeaturedProducts)
	products.Get("/get/hotdeal/:count?", h.HotDealProducts)
	products.Put("/gallery/:id", h.UpdateGallery)
	products.Get("/", h.ListProducts)
	products.Get("/:id", h.GetProduct)
	products.Post("/", h.CreateProduct)
	products.Put("/:id", h.UpdateProduct)
	products.Delete("/:id", h.DeleteProduct)

	categories := v1.Group("/categories")
	categories.Get("/get/count", h.CountCategories)
	categories.Get("/", h.ListCategories)
	categories.Get("/:id", h.GetCategory)
	categories.Post("/", h.CreateCategory)
	categories.Put("/:id", h.UpdateCategory)
	categories.Delete("/:id", h.DeleteCategory)

	orders := v1.Group("/orders")
	orders.Get("/get/sales", h.TotalSales)
	orders.Get("/get/count", h.CountOrders)
	orders.Get("/get/user/:userid", h.UserOrders)
	orders.Get("/", h.ListOrders)
	orders.Get("/:id", h.GetOrder)
	orders.Post("/", h.CreateOrder)
	orders.Put("/:id", h.UpdateOrderStatus)
	orders.Delete("/:id", h.DeleteOrder)

	usersGroup := v1.Group("/users")
	usersGroup.Post("/login", loginLimiter(cfg.LoginRateLimit, cfg.LimiterStorage), h.Login)
	usersGroup.Post("/register", h.Register)
	usersGroup.Post("/refresh", h.Refresh)
	usersGroup.Get("/get/count", h.CountUsers)
	usersGroup.Get("/", h.ListUsers)
	usersGroup.Get("/:id", h.GetUser)
	usersGroup.Post("/", h.CreateUser)
	usersGroup.Put("/:id", h.UpdateUser)
	usersGroup.Delete("/:id", h.DeleteUser)

	v1.Get("/notifications", h.Notifications)

	return app
}

// loginLimiter caps login attempts per client IP per minute. A limit of
// zero or less disables it.
func loginLimiter(max int, storage fiber.Storage) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "too_many_requests",
				Message: "Too many login attempts, try again later",
			})
		},
	})
}
