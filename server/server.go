package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MoodFM/config"
	"MoodFM/core/agent"
	"MoodFM/core/chat"
	"MoodFM/core/curator"
	"MoodFM/core/spotify"
	"MoodFM/logger"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	tokenCache := spotify.NewTokenCache(
		cfg.SpotifyClientID,
		cfg.SpotifyClientSecret,
		cfg.SpotifyAccountsURL,
		cfg.TokenCacheTTL,
	)
	catalog := spotify.NewClient(cfg.SpotifyAPIURL, cfg.SpotifyMarket, tokenCache)

	agentConfig := &agent.MoodAgentConfig{
		APIBaseURL:  cfg.OpenAIAPIURL,
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		MaxTokens:   500,
		Temperature: 0.7,
	}
	moodAgent := agent.NewMoodAgent(agentConfig)
	artworkAgent := agent.NewArtworkAgent(agentConfig, cfg.OpenAIImageModel)

	chatClient := chat.NewClient(cfg.ChatAPIURL, cfg.ChatBotToken)
	collector := curator.NewCollector(chatClient)
	engine := curator.NewEngine(catalog, curator.ScoringConfig{
		EnergyWeight:     cfg.ScoreEnergyWeight,
		ValenceWeight:    cfg.ScoreValenceWeight,
		PopularityWeight: cfg.ScorePopularityWeight,
		JitterWidth:      cfg.FeatureJitterWidth,
		JitterBias:       cfg.FeatureJitterBias,
	})
	pipeline := curator.New(collector, moodAgent, engine, artworkAgent, chatClient)

	commandHandler := NewCommandHandler(cfg.ChatSigningSecret, pipeline)

	router := mux.NewRouter()
	router.HandleFunc("/api/commands/playlist", commandHandler.HandlePlaylistCommand).Methods(http.MethodPost)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("[Server] listening", logger.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("[Server] failed to start", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("[Server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("[Server] forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("[Server] stopped")
}
