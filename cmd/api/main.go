package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/doclane/ragapi/internal/blobstore"
	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/internal/data/redisStore"
	"github.com/doclane/ragapi/internal/data/store"
	"github.com/doclane/ragapi/internal/handlers"
	"github.com/doclane/ragapi/internal/rag"
	"github.com/doclane/ragapi/internal/rag/embedding"
	"github.com/doclane/ragapi/internal/rag/embedding/googleEmbedding"
	"github.com/doclane/ragapi/internal/rag/embedding/openaiEmbedding"
	"github.com/doclane/ragapi/internal/rag/ingest"
	"github.com/doclane/ragapi/internal/rag/llm/gemini"
	"github.com/doclane/ragapi/internal/rag/retrieval"
	"github.com/doclane/ragapi/internal/rag/vectorDB/qdrantDB"
	"github.com/doclane/ragapi/internal/server"
	"github.com/doclane/ragapi/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//external clients
	metaStore := redisStore.GetRedisStore(serviceContext, config.RedisDocumentStore)
	chunkStore := qdrantDB.GetQdrantClient(serviceContext)
	blobStore := blobstore.GetMinioStore()
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey())

	var embedder embedding.Embedder
	switch config.EmbeddingProvider() {
	case "openai":
		embedder = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey())
	default:
		embedder = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	}

	if metaStore == nil || chunkStore == nil || blobStore == nil || embedder == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ",
			"MetaStore", metaStore != nil,
			"ChunkStore", chunkStore != nil,
			"BlobStore", blobStore != nil,
			"Embedder", embedder != nil,
			"LLMProvider", llmProvider != nil)
		return
	}

	//wire the pipeline
	storage := store.NewDocumentStorage(metaStore, chunkStore)
	pipeline := ingest.NewPipeline(storage, embedder)
	engine := retrieval.NewEngine(storage, embedder)
	ragService := rag.NewService(blobStore, pipeline, engine, llmProvider)

	handlers.InitRagHandler(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
