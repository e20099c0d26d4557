package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookmuse/bookmuse-api/internal/config"
	"github.com/bookmuse/bookmuse-api/internal/database/bunstore"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
	"github.com/bookmuse/bookmuse-api/internal/infrastructure/googlebooks"
	"github.com/bookmuse/bookmuse-api/internal/infrastructure/llm"
	httpserver "github.com/bookmuse/bookmuse-api/internal/server"
	"github.com/bookmuse/bookmuse-api/internal/usecase/discovery"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	dbConn     *sql.DB
}

func New(cfg *config.Config) *Server {
	return &Server{
		cfg: cfg,
	}
}

func (s *Server) Run() error {
	ctx := context.Background()

	// ==========================================
	// Initialize Dependencies (Dependency Injection)
	// ==========================================

	var cloudClient repository.LLMClient
	if !s.cfg.UseLocalOnlyLLM {
		geminiClient, err := llm.NewGeminiClient(ctx, s.cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
		defer func() { _ = geminiClient.Close() }()
		cloudClient = geminiClient
	}

	localClient := llm.NewLocalOllamaClient(s.cfg.OllamaHost, s.cfg.OllamaModel)

	if s.cfg.UseLocalOnlyLLM {
		log.Println("[System] 🏠 BM_USE_LOCAL_ONLY_LLM is true. Routing all tasks to Local Ollama.")
		cloudClient = localClient

		// Make sure the local model is actually available before serving.
		if err := localClient.PullModel(ctx, s.cfg.OllamaModel); err != nil {
			log.Printf("[Warning] 📥 Failed to pull model '%s': %v", s.cfg.OllamaModel, err)
		}
	}

	llmRouter := llm.NewRouter(localClient, cloudClient)
	log.Printf("[System] 🛤️  LLM Router initialized (Cloud: %s | Local: %s)",
		cloudClient.Name(), localClient.Name())

	catalogClient := googlebooks.NewClient(s.cfg.GoogleBooksBaseURL, s.cfg.GoogleBooksAPIKey, s.cfg.GoogleBooksRPS)

	extractor := discovery.NewExtractor(llmRouter)
	directSearcher := discovery.NewDirectSearcher(extractor, catalogClient)
	recommender := discovery.NewRecommender(extractor, catalogClient)
	moodFinder := discovery.NewMoodFinder(catalogClient, discovery.DefaultMoodGenres())

	var err error
	s.dbConn, err = sql.Open(sqliteshim.ShimName, s.cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.dbConn.Close(); closeErr != nil {
			log.Printf("[Warning] Failed to close database: %v", closeErr)
		}
	}()

	store, err := bunstore.NewBunStore(s.dbConn, sqlitedialect.New())
	if err != nil {
		return err
	}

	// ==========================================
	// Initialize and Start HTTP Server
	// ==========================================

	apiServer := httpserver.NewServer(directSearcher, recommender, moodFinder, store, store, s.cfg.RequestTimeout())
	handler := apiServer.RegisterRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: handler,
	}

	// Listen for shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("[System] 🌐 Starting REST API Server on :%d", s.cfg.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Error] HTTP server failed: %v", err)
		}
	}()

	<-stop
	log.Println("[System] 🛑 Shutdown signal received. Draining connections...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Error] HTTP shutdown error: %v", err)
	}

	log.Println("[System] ✅ Server stopped gracefully.")
	return nil
}
