package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SalmaanRauf/Reel-Maker/internal/api/handlers"
	"github.com/SalmaanRauf/Reel-Maker/internal/config"
	"github.com/SalmaanRauf/Reel-Maker/internal/services/ai"
	"github.com/SalmaanRauf/Reel-Maker/internal/workers"
)

// NewServer assembles the fiber app with all routes registered.
func NewServer(cfg *config.Config, analyzer *ai.Analyzer, store *workers.Store, pipeline *workers.Pipeline) *fiber.App {
	app := fiber.New()

	handlers.RegisterHealthRoutes(app)
	handlers.RegisterReelRoutes(app, cfg, analyzer, store, pipeline)

	return app
}
