package main

import (
	"log"

	"github.com/SalmaanRauf/Reel-Maker/internal/api"
	"github.com/SalmaanRauf/Reel-Maker/internal/config"
	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
	"github.com/SalmaanRauf/Reel-Maker/internal/detect"
	"github.com/SalmaanRauf/Reel-Maker/internal/services/ai"
	"github.com/SalmaanRauf/Reel-Maker/internal/workers"
)

func main() {
	cfg := config.Load()

	var detector crop.Detector
	detector, err := detect.New(cfg.Detector, detect.Options{
		CascadePath:   cfg.CascadePath,
		ModelPath:     cfg.ModelPath,
		SidecarSocket: cfg.SidecarSocket,
	})
	if err != nil {
		// Smart crop degrades to a centered static crop without a detector
		log.Printf("Warning: detector %q unavailable (smart crop disabled): %v", cfg.Detector, err)
		detector = nil
	} else {
		log.Printf("Detector %q initialized", cfg.Detector)
		if closer, ok := detector.(interface{ Close() }); ok {
			defer closer.Close()
		}
	}

	analyzer := ai.NewAnalyzer(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	store := workers.NewStore(64)
	pipeline := workers.NewPipeline(cfg, detector)
	pipeline.Start(store)

	server := api.NewServer(cfg, analyzer, store, pipeline)

	log.Println("Server running on http://localhost:" + cfg.Port)
	if err := server.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
