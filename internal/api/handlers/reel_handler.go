package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/SalmaanRauf/Reel-Maker/internal/config"
	"github.com/SalmaanRauf/Reel-Maker/internal/services/ai"
	"github.com/SalmaanRauf/Reel-Maker/internal/services/yt"
	"github.com/SalmaanRauf/Reel-Maker/internal/workers"
)

// RegisterReelRoutes wires the reel endpoints:
//
//	POST /reel/analyze  - transcript + LLM clip suggestions
//	POST /reel/generate - synchronous clip build
//	POST /reel/jobs     - asynchronous clip build, returns a job ID
//	GET  /reel/jobs/:id - job status
func RegisterReelRoutes(app *fiber.App, cfg *config.Config, analyzer *ai.Analyzer, store *workers.Store, pipeline *workers.Pipeline) {
	app.Post("/reel/analyze", func(c *fiber.Ctx) error {
		return analyzeReel(c, cfg, analyzer)
	})
	app.Post("/reel/generate", func(c *fiber.Ctx) error {
		return generateReel(c, pipeline)
	})
	app.Post("/reel/jobs", func(c *fiber.Ctx) error {
		return submitJob(c, store)
	})
	app.Get("/reel/jobs/:id", func(c *fiber.Ctx) error {
		return jobStatus(c, store)
	})
}

type generatePayload struct {
	URL       string `json:"url"`
	Start     string `json:"start"`
	End       string `json:"end"`
	SmartCrop bool   `json:"smartCrop"`
	Dynamic   bool   `json:"dynamic"`
	Caption   bool   `json:"caption"`
}

func (p generatePayload) toJob() workers.Job {
	return workers.Job{
		URL:       p.URL,
		Start:     p.Start,
		End:       p.End,
		SmartCrop: p.SmartCrop,
		Dynamic:   p.Dynamic,
		Caption:   p.Caption,
	}
}

func analyzeReel(c *fiber.Ctx, cfg *config.Config, analyzer *ai.Analyzer) error {
	var payload struct {
		URL      string `json:"url"`
		NumClips int    `json:"numClips"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	info, err := yt.GetVideoInfo(payload.URL)
	if err != nil {
		// Non-fatal, analysis works without title context
		info = yt.VideoInfo{}
	}

	srtPath, err := yt.DownloadTranscript(payload.URL, cfg.SubtitleLang)
	if err != nil {
		return errJSON(c, err)
	}

	srtContent, err := os.ReadFile(srtPath)
	if err != nil {
		return errJSON(c, err)
	}

	candidates, err := analyzer.AnalyzeTranscript(c.Context(), string(srtContent), info.Title, info.Channel, payload.NumClips)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"title":      info.Title,
		"channel":    info.Channel,
		"transcript": srtPath,
		"clips":      candidates,
	})
}

func generateReel(c *fiber.Ctx, pipeline *workers.Pipeline) error {
	var payload generatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if yt.ExtractVideoID(payload.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid YouTube URL"})
	}

	output, err := pipeline.Run(c.Context(), payload.toJob())
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"clip": output})
}

func submitJob(c *fiber.Ctx, store *workers.Store) error {
	var payload generatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if yt.ExtractVideoID(payload.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid YouTube URL"})
	}

	id, ok := store.Submit(payload.toJob())
	if !ok {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "job queue is full"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id})
}

func jobStatus(c *fiber.Ctx, store *workers.Store) error {
	job, ok := store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

func errJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
