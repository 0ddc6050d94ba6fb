package bootstrap

import (
	"log"
	"time"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/controller"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/llm/factory"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	httpTimeout := time.Duration(cfg.Ai.HTTPTimeoutSeconds) * time.Second

	// 2. Embedding Provider based on Config
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
			httpTimeout,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(
			cfg.Keys.GoogleGemini,
			cfg.Ai.EmbeddingModel,
			httpTimeout,
		)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	}

	// Query embeddings are cached so that repeated questions skip the
	// upstream call. Uploads share the same decorated provider.
	cachedEmbeddingProvider := embedding.NewCachedProvider(embeddingProvider, 30*time.Minute)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		httpTimeout,
	)
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Services
	documentService := service.NewDocumentService(uowFactory, cachedEmbeddingProvider, cfg.Ai, sysLogger)
	chatService := service.NewChatService(uowFactory, cachedEmbeddingProvider, llmProvider, cfg.Ai, sysLogger)

	// 5. Controllers
	documentController := controller.NewDocumentController(documentService)
	chatController := controller.NewChatController(chatService)

	return &Container{
		DocumentController: documentController,
		ChatController:     chatController,
		Logger:             sysLogger,
	}
}
