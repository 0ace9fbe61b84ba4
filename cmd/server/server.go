package main

import (
	"fmt"
	"log"
	"net/http"

	"tutor/config"
	"tutor/db"
	"tutor/handlers"
	"tutor/services"
	"tutor/services/llm"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	store, err := newCollectionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize collection store: %v", err)
	}
	defer store.Close()

	generator, err := newGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize generation client: %v", err)
	}

	memoryService := services.NewMemoryService(store)
	insightService := services.NewInsightService(memoryService)
	safetyService := services.NewSafetyService(cfg.SafetyEnabled)

	tutorService := services.NewTutorService(memoryService, insightService, safetyService, generator, cfg.DefaultModel)
	tutorHandler := handlers.NewTutorHandler(tutorService)
	memoryHandler := handlers.NewMemoryHandler(memoryService, insightService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	tutorHandler.RegisterRoutes(router)
	memoryHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func newCollectionStore(cfg *config.Config) (db.CollectionStore, error) {
	if cfg.DatabaseURL != "" {
		log.Printf("[INFO] Using Postgres collection store")
		return db.NewPostgresStore(cfg.DatabaseURL)
	}
	log.Printf("[INFO] Using file collection store in %s", cfg.DataDir)
	return db.NewFileStore(cfg.DataDir)
}

func newGenerator(cfg *config.Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
