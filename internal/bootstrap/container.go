package bootstrap

import (
	"context"
	"log"

	"memory-map-be/internal/config"
	"memory-map-be/internal/controller"
	"memory-map-be/internal/handler"
	"memory-map-be/internal/pkg/imaging"
	"memory-map-be/internal/pkg/logger"
	"memory-map-be/internal/pkg/storage"
	"memory-map-be/internal/repository/unitofwork"
	"memory-map-be/internal/service"
	"memory-map-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MemoryController  controller.IMemoryController
	GeocodeController controller.IGeocodeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	LiveService     service.ILiveService

	// WebSockets & Live Feed
	LiveHandler  *handler.LiveHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	blobStorage, err := storage.NewS3Storage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize blob storage: %v", err)
	}

	processor := imaging.NewProcessor(cfg.Image.MaxDimension, cfg.Image.JpegQuality)

	// WebSocket Hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.MemoryEventTopic, pubSub)
	memoryService := service.NewMemoryService(uowFactory, blobStorage, processor, publisherService, sysLogger)
	geocodeService := service.NewGeocodeService(cfg.Keys.Mapbox, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.MemoryEventTopic,
		uowFactory,
		blobStorage,
		processor,
		cfg.Image.ThumbnailSize,
		sysLogger,
	)
	liveService := service.NewLiveService(
		pubSub,
		cfg.Keys.MemoryEventTopic,
		uowFactory,
		wsHub,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		MemoryController:  controller.NewMemoryController(memoryService),
		GeocodeController: controller.NewGeocodeController(geocodeService),

		ConsumerService: consumerService,
		LiveService:     liveService,

		LiveHandler:  handler.NewLiveHandler(wsHub, sysLogger),
		WebSocketHub: wsHub,
	}
}
