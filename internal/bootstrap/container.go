package bootstrap

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"

	"docsearch-be/internal/config"
	"docsearch-be/internal/controller"
	"docsearch-be/internal/pkg/logger"
	"docsearch-be/internal/repository/implementation"
	"docsearch-be/internal/repository/memory"
	"docsearch-be/internal/service"
	"docsearch-be/pkg/filesearch"
	"docsearch-be/pkg/metrics"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	SearchController   controller.ISearchController
	SystemController   controller.ISystemController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Metrics registry (exposed for the /metrics scrape route)
	Registry *prometheus.Registry

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	registry := prometheus.NewRegistry()
	collectors := metrics.New(registry)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Remote engine client
	engine := filesearch.NewClient(
		cfg.FileSearch.BaseURL,
		cfg.FileSearch.APIKey,
		cfg.FileSearch.VectorStoreId,
		cfg.FileSearch.Model,
		time.Duration(cfg.FileSearch.TimeoutSeconds)*time.Second,
	)

	// 4. Repositories
	manifestRepo := implementation.NewManifestRepository(cfg.App.ManifestPath, sysLogger)
	ingestJournal := memory.NewIngestJournalRepository()

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.ActivityTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, ingestJournal, collectors, sysLogger)
	documentService := service.NewDocumentService(engine, manifestRepo, ingestJournal, publisherService, collectors, sysLogger, cfg)
	searchService := service.NewSearchService(engine, manifestRepo, publisherService, collectors, sysLogger, cfg)

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		SearchController:   controller.NewSearchController(searchService),
		SystemController:   controller.NewSystemController(consumerService),
		ConsumerService:    consumerService,
		Registry:           registry,
		Logger:             sysLogger,
	}
}
