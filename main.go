package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"servicehub/config"
	"servicehub/controllers"
	"servicehub/controllers/admin"
	"servicehub/cron"
	"servicehub/db"
	"servicehub/logger"
	"servicehub/redis"
	"servicehub/routes"
	"servicehub/services"
)

func main() {
	logger.Setup()
	cfg := config.Load()

	db.Init()
	redis.InitRedis()

	notifier := services.MailNotifier{}
	controllers.Setup(db.DB, notifier)
	admin.Setup(services.NewRequestLifecycle(db.DB, notifier))

	cron.StartCronJobs()

	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupOnboardingRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupUploadRoutes(app)
	routes.SetupAdminRoutes(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatal("Server stopped: ", err)
	}
}
