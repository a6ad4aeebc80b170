package service

import (
	"context"
	"encoding/json"

	"memory-map-be/internal/dto"
	"memory-map-be/internal/pkg/logger"
	"memory-map-be/internal/repository/specification"
	"memory-map-be/internal/repository/unitofwork"
	"memory-map-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ILiveService bridges MEMORY_CREATED events to the websocket hub so
// connected map clients see new memories appear without polling.
type ILiveService interface {
	Consume(ctx context.Context) error
}

type liveService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewLiveService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	hub *websocket.Hub,
	log logger.ILogger,
) ILiveService {
	return &liveService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		hub:        hub,
		logger:     log,
	}
}

func (ls *liveService) Consume(ctx context.Context) error {
	messages, err := ls.pubSub.Subscribe(ctx, ls.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ls.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ls *liveService) processMessage(ctx context.Context, msg *message.Message) {
	// The live feed is best effort; nothing here warrants a redelivery.
	defer msg.Ack()

	var payload dto.PublishMemoryCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ls.logger.Error("live", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	uow := ls.uowFactory.NewUnitOfWork(ctx)
	memory, err := uow.MemoryRepository().FindOne(ctx, specification.ByID{ID: payload.MemoryId})
	if err != nil || memory == nil {
		ls.logger.Warn("live", "memory not found for live event", map[string]interface{}{
			"memory_id": payload.MemoryId,
		})
		return
	}

	res := toMemoryResponse(memory)
	data, err := json.Marshal(map[string]interface{}{
		"type": "memory.created",
		"data": res,
	})
	if err != nil {
		return
	}

	ls.hub.Broadcast(data)
}
