package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"gloam/internal/config"
	"gloam/internal/server"
)

func main() {
	cfg, err := config.Load("gloam_config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		log.Fatalf("apply env overrides: %v", err)
	}

	logger := log.New(os.Stderr, cfg.Server.LogTag+" ", log.LstdFlags)

	seed := time.Now().UnixNano()
	if cfg.SeededRNG.Enabled {
		seed = cfg.SeededRNG.Seed
		logger.Printf("using fixed rng seed %d", seed)
	}

	app, handler, err := server.NewHandler(server.Options{
		Config:   cfg,
		Logger:   logger,
		Rand:     rand.New(rand.NewSource(seed)),
		StartDay: true,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	if daily := app.Manager.CurrentDaily(); daily != nil {
		logger.Printf("daily objective: %q (%s)", daily.Title, daily.TemplateID)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Printf("listening on http://localhost%s", addr)
	logger.Fatal(http.ListenAndServe(addr, handler))
}
