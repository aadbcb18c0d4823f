package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirenbot/sirenbot/internal/config"
	"github.com/sirenbot/sirenbot/internal/extraction"
	"github.com/sirenbot/sirenbot/internal/handlers"
	"github.com/sirenbot/sirenbot/internal/incident"
	slackutil "github.com/sirenbot/sirenbot/internal/slack"
	"github.com/sirenbot/sirenbot/internal/vocabulary"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Siren incident bot...")

	// Load detection vocabulary
	vocab := vocabulary.Default()
	if cfg.VocabularyPath != "" {
		vocab, err = vocabulary.LoadFile(cfg.VocabularyPath)
		if err != nil {
			log.Fatalf("Failed to load vocabulary from %s: %v", cfg.VocabularyPath, err)
		}
		log.Printf("Vocabulary loaded from %s", cfg.VocabularyPath)
	} else {
		log.Printf("Using built-in vocabulary")
	}

	// Incident state is in-memory and scoped to process lifetime
	store := incident.NewStore()
	extractor := extraction.New(vocab)

	// Initialize Slack manager
	slackManager := slackutil.NewManager()

	slackManager.SetEventHandler(func(socketClient *socketmode.Client, client *slack.Client) {
		incidentHandler := handlers.NewIncidentHandler(
			slackutil.NewGateway(client),
			store,
			extractor,
			vocab,
		)

		if auth, err := client.AuthTest(); err != nil {
			log.Printf("Warning: could not resolve bot user ID: %v", err)
		} else {
			incidentHandler.SetBotUserID(auth.UserID)
		}

		incidentHandler.HandleSocketMode(socketClient)
		log.Printf("Slack components initialized")
	})

	// Read-only HTTP surface
	httpHandler := handlers.NewHTTPHandler(store)
	mux := http.NewServeMux()
	httpHandler.SetupRoutes(mux)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: mux,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	ctx, ctxCancel := context.WithCancel(context.Background())
	defer ctxCancel()

	if err := slackManager.Start(ctx, cfg.SlackBotToken, cfg.SlackAppToken); err != nil {
		log.Fatalf("Failed to start Slack: %v", err)
	}

	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)
	log.Printf("Incident API endpoint: http://localhost:%d/api/incidents", cfg.HTTPPort)
	log.Println("Bot is running! Press Ctrl+C to exit.")

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("\nReceived shutdown signal, cleaning up...")
	ctxCancel()
	slackManager.Stop()
	if err := httpServer.Close(); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	log.Println("Shutdown complete")
}
