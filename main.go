package main

import (
	"crm-app/config"
	"crm-app/controllers/idgen"
	"crm-app/database"
	"crm-app/middleware"
	"crm-app/routes"
	"crm-app/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	logger, err := config.NewLogger()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	idgen.Init(config.SnowflakeNode)

	db, err := config.OpenDB(logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Prepare(db, logger); err != nil {
		logger.Fatal("Failed to prepare database", zap.Error(err))
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	config.SetupCORS(app)

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	svc := routes.NewServices(db, utils.NewSMTPMailerFromConfig(), logger)
	routes.SetupRoutes(app, svc, logger)

	logger.Info("Server starting", zap.String("port", config.APP_PORT), zap.String("env", config.APP_ENV))
	if err := app.Listen(":" + config.APP_PORT); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
