package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/mindforge/collective-mind/ai"
	"github.com/mindforge/collective-mind/api"
	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/config"
	"github.com/mindforge/collective-mind/core"
	"github.com/mindforge/collective-mind/mind"
	"github.com/mindforge/collective-mind/registry"
	"github.com/mindforge/collective-mind/scanner"
	"github.com/mindforge/collective-mind/storage"
	"github.com/mindforge/collective-mind/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	messenger, err := messaging.NewMessenger(cfg.BusURL)
	if err != nil {
		log.Fatalf("Failed to connect to bus at %s: %v", cfg.BusURL, err)
	}
	defer messenger.Close()

	store, err := storage.Open(storage.DefaultConfig(cfg.StoreDir))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	artifacts := storage.NewArtifactRepository(store)

	llmConfig := ai.DefaultLLMConfig()
	if cfg.InferenceModel != "" {
		llmConfig.Model = cfg.InferenceModel
	}
	client := ai.NewClient(cfg.InferenceAPIKey, llmConfig)

	identity := ai.Identity{
		Name:           cfg.MindName,
		Specialization: cfg.Specialization,
		Mission:        cfg.Mission,
	}

	dispatcher := mind.NewDispatcher()
	dispatcher.Register(core.PhaseAnalysis, scanner.New(cfg.ProjectRoot, cfg.MindName, cfg.Specialization, artifacts))
	dispatcher.Register(core.PhaseCoreSystems, ai.NewDevelopmentWorker(client, identity))
	dispatcher.Register(core.PhaseUserExperience, ai.NewDesignWorker(client, identity, ai.NewResearcher(client)))
	dispatcher.Register(core.PhasePolish, ai.NewOptimizationWorker(client, identity))

	m := mind.New(mind.Config{
		Name:           cfg.MindName,
		Specialization: cfg.Specialization,
		Mission:        cfg.Mission,
		BaseDelay:      cfg.BaseDelay,
		StandupPeriod:  cfg.StandupPeriod,
	}, messenger, artifacts, dispatcher)

	m.SetReviewer(core.ChannelCodeReview, ai.NewCodeReviewer(client, identity))
	m.SetReviewer(core.ChannelDesignReview, ai.NewDesignReviewer(client, identity))
	m.SetInsightExtractor(ai.NewInsightExtractor(client))

	wsManager := messaging.NewWSManager()
	m.SetEventSink(wsManager.Broadcast)

	reg := registry.New()
	reg.Register(m)

	apiPort := cfg.APIPort
	if apiPort == 0 {
		apiPort = utils.FindAvailableAPIPort()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, reg, artifacts, wsManager)
	go func() {
		if err := router.Run(fmt.Sprintf(":%d", apiPort)); err != nil {
			log.Printf("API server stopped: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Printf("Shutting down %s", cfg.MindName)
		m.Stop()
		cancel()
	}()

	m.Run(ctx)
}
