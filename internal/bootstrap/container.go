package bootstrap

import (
	"context"
	"log"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/config"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/controller"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/logger"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/contract"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/implementation"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/service"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/embedding"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/events"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/hours"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/search"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/session"

	pktNats "github.com/FrankSpooren/HolidaiButler-sub009/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController  controller.ISearchController
	SessionController controller.ISessionController
	POIController     controller.IPOIController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	AnalyticsService service.IAnalyticsService
	SessionSweeper   *session.Sweeper

	// IndexPublisher lets seed tooling enqueue POIs for embedding.
	IndexPublisher service.IPublisherService

	// Infrastructure handles, closed on shutdown
	SysLogger logger.ILogger
	NatsPub   *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	analyticsLogger := logger.NewIsolatedLogger(cfg.App.AnalyticsLogPath)

	poiRepo := implementation.NewPOIRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding Provider
	embeddingProvider := newEmbeddingProvider(cfg)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Durable mirror of search events; other instances' turns land in the
	// analytics log too.
	if natsSub != nil {
		err := natsSub.Subscribe("events."+events.TypeSearchPerformed, "search-analytics", func(_ context.Context, evt events.Event) error {
			analyticsLogger.Info("analytics", evt.EventType(), evt.Payload())
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to search events: %v", err)
		}
	}

	// Session store: Redis with in-process fallback, or pure in-process.
	store := newSessionStore(cfg, sysLogger)

	// 5. Domain assembly
	retriever := search.NewVectorRetriever(
		embeddingProvider,
		poiRepo,
		cfg.Search.TopK,
		cfg.Search.SimilarityThreshold,
		cfg.Search.EmbedTimeout,
	)
	engine := scoring.NewEngine(scoring.DefaultWeights(), cfg.Search.MaxDistanceKm)
	evaluator := &hours.WeeklyEvaluator{Horizon: cfg.Search.HoursHorizon}
	assembler := search.NewAssembler(evaluator, cfg.Search.MaxResults)

	// 6. Services
	indexPublisher := service.NewPublisherService(pubSub, cfg.Keys.IndexTopic)
	analyticsPublisher := service.NewPublisherService(pubSub, cfg.Keys.AnalyticsTopic)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IndexTopic,
		poiRepo,
		embeddingProvider,
	)
	analyticsService := service.NewAnalyticsService(
		pubSub,
		cfg.Keys.AnalyticsTopic,
		natsPub,
		analyticsLogger,
	)

	searchService := service.NewSearchService(
		store,
		retriever,
		engine,
		assembler,
		analyticsPublisher,
		sysLogger,
	)
	sessionService := service.NewSessionService(store)
	poiService := service.NewPOIService(poiRepo, indexPublisher, sysLogger)

	// Idle sweep keeps the in-process store bounded; Redis entries expire
	// through their own TTL. Expiries are mirrored onto the event bus.
	var expiryPub session.EventPublisher
	if natsPub != nil {
		expiryPub = natsPub
	}
	sweeper := session.NewSweeper(store, cfg.Session.SweepInterval, cfg.Session.TTL, expiryPub, sysLogger)

	return &Container{
		SearchController:  controller.NewSearchController(searchService),
		SessionController: controller.NewSessionController(sessionService),
		POIController:     controller.NewPOIController(poiService),

		ConsumerService:  consumerService,
		AnalyticsService: analyticsService,
		SessionSweeper:   sweeper,
		IndexPublisher:   indexPublisher,

		SysLogger: sysLogger,
		NatsPub:   natsPub,
	}
}

// POIRepository exposes the repository for seed tooling that bypasses HTTP.
func POIRepository(db *gorm.DB) contract.POIRepository {
	return implementation.NewPOIRepository(db)
}

func newEmbeddingProvider(cfg *config.Config) embedding.Provider {
	var provider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	// Circuit breaker stops hammering a failing provider.
	return embedding.NewBreakerProvider(provider, cfg.Ai.EmbeddingProvider)
}

func newSessionStore(cfg *config.Config, sysLogger logger.ILogger) session.Store {
	fallback := session.NewMemoryStore(cfg.Session.MemoryTTL)
	if cfg.Session.Backend != "redis" {
		log.Printf("[INFO] Using in-process session store")
		return fallback
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return session.NewRedisStore(rdb, fallback, cfg.Session.TTL, sysLogger)
}
