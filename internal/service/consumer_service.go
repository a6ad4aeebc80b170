package service

import (
	"context"
	"encoding/json"
	"strings"

	"memory-map-be/internal/dto"
	"memory-map-be/internal/pkg/imaging"
	"memory-map-be/internal/pkg/logger"
	"memory-map-be/internal/pkg/storage"
	"memory-map-be/internal/repository/specification"
	"memory-map-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService processes MEMORY_CREATED events in the background,
// generating a small thumbnail variant next to the uploaded image.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	blobStorage   storage.IBlobStorage
	processor     *imaging.Processor
	thumbnailSize int
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	blobStorage storage.IBlobStorage,
	processor *imaging.Processor,
	thumbnailSize int,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		blobStorage:   blobStorage,
		processor:     processor,
		thumbnailSize: thumbnailSize,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishMemoryCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payload will never succeed, don't retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	memory, err := uow.MemoryRepository().FindOne(ctx, specification.ByID{ID: payload.MemoryId})
	if err != nil {
		cs.logger.Error("consumer", "failed to load memory", map[string]interface{}{
			"memory_id": payload.MemoryId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}
	if memory == nil || !memory.HasImage {
		msg.Ack()
		return
	}

	original, err := cs.blobStorage.Download(ctx, memory.ImagePath)
	if err != nil {
		cs.logger.Error("consumer", "failed to download original image", map[string]interface{}{
			"key":   memory.ImagePath,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	thumb, err := cs.processor.Thumbnail(original, cs.thumbnailSize)
	if err != nil {
		// A memory without a thumbnail is still valid; don't retry a
		// deterministic decode failure.
		cs.logger.Warn("consumer", "thumbnail generation failed", map[string]interface{}{
			"key":   memory.ImagePath,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	if _, err := cs.blobStorage.Upload(ctx, ThumbnailKey(memory.ImagePath), thumb, "image/jpeg"); err != nil {
		cs.logger.Error("consumer", "failed to upload thumbnail", map[string]interface{}{
			"key":   memory.ImagePath,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

// ThumbnailKey derives the variant key from the original object key.
func ThumbnailKey(key string) string {
	if i := strings.LastIndex(key, "."); i > strings.LastIndex(key, "/") {
		key = key[:i]
	}
	return key + "_thumb.jpg"
}
