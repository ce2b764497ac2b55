package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/neuralease/neuralease/config"
	"github.com/neuralease/neuralease/internal/api/handlers"
	"github.com/neuralease/neuralease/internal/api/middleware"
	"github.com/neuralease/neuralease/internal/api/routes"
	"github.com/neuralease/neuralease/internal/auth"
	"github.com/neuralease/neuralease/internal/logger"
	"github.com/neuralease/neuralease/internal/nlp"
	pgrepo "github.com/neuralease/neuralease/internal/repositories/postgres"
	"github.com/neuralease/neuralease/internal/respond"
	"github.com/neuralease/neuralease/internal/safety"
	"github.com/neuralease/neuralease/internal/services"
	"github.com/neuralease/neuralease/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	lg := logger.New()

	if cfg.EncryptionKey == "" {
		log.Fatal("ENCRYPTION_KEY is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Accounts always live in PostgreSQL.
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	lg.Info("PostgreSQL connected")

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatalf("blob store init error: %v", err)
	}
	lg.WithField("backend", cfg.StoreBackend).Info("conversation store ready")

	cipher, err := store.NewCipher(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("encryption init error: %v", err)
	}
	st := store.New(blobs, cipher, cfg.MaxConversationLength, cfg.ContextWindow, cfg.SessionExpiry, lg)

	// Pipeline stages.
	gate := safety.NewGate(lg)
	filter := safety.NewDomainFilter(cfg.MentalHealthTopics, cfg.CrisisKeywords, lg)
	analyzer := nlp.NewAnalyzer(
		&nlp.RemoteClassifier{
			Endpoint:  cfg.HFSentimentURL,
			APIKey:    cfg.HFAPIKey,
			Timeout:   cfg.ClassifierTimeout,
			Normalize: nlp.NormalizeSentimentLabel,
		},
		&nlp.RemoteClassifier{
			Endpoint: cfg.HFEmotionURL,
			APIKey:   cfg.HFAPIKey,
			Timeout:  cfg.ClassifierTimeout,
		},
		cfg.SentimentThreshold, cfg.EmotionThreshold, lg,
	)
	overrides := nlp.NewOverrideEngine(cfg.IntentConfidenceFloor, filter, lg)

	var providers []respond.Provider
	if cfg.VertexProject != "" {
		gemini, err := respond.NewGemini(context.Background(), cfg.VertexProject, cfg.VertexLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("Vertex AI init error: %v", err)
		}
		defer gemini.Close()
		providers = append(providers, gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, respond.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	}

	verifier := respond.NewVerifier(cfg.MentalHealthTopics, filter.RedirectionMessage())
	cascade := respond.NewCascade(providers, respond.NewBuiltin(cfg.ResourceLinks), verifier, filter, cfg.ProviderTimeout, lg)

	// Services and handlers.
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	accounts := pgrepo.NewAccountRepo(config.PostgresDB)

	accountSvc := services.NewAccountService(accounts, tokens, cfg.ResponseStyles)
	conversationSvc := services.NewConversationService(st, accounts, lg)
	chatSvc := services.NewChatService(conversationSvc, st, gate, filter, analyzer, overrides, cascade, lg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:       tokens,
		Auth:         handlers.NewAuthHandler(accountSvc),
		Conversation: handlers.NewConversationHandler(conversationSvc),
		Chat:         handlers.NewChatHandler(chatSvc),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildBlobStore(cfg *config.Config) (store.BlobStore, error) {
	switch cfg.StoreBackend {
	case "redis":
		if err := config.InitRedis(); err != nil {
			return nil, err
		}
		return store.NewRedisBlobStore(config.RedisClient), nil
	case "mongo":
		if err := config.InitMongo(); err != nil {
			return nil, err
		}
		if err := config.EnsureMongoIndexes(); err != nil {
			return nil, err
		}
		return store.NewMongoBlobStore(config.MongoDatabase()), nil
	default:
		return store.NewPostgresBlobStore(config.PostgresDB), nil
	}
}
