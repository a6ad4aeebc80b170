package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"memory-map-be/internal/dto"
	"memory-map-be/internal/entity"
	"memory-map-be/internal/pkg/imaging"
	"memory-map-be/internal/pkg/logger"
	"memory-map-be/internal/pkg/serverutils"
	"memory-map-be/internal/pkg/storage"
	"memory-map-be/internal/repository/specification"
	"memory-map-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ImageUpload carries the raw attachment bytes from the transport layer.
type ImageUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

type IMemoryService interface {
	Create(ctx context.Context, req *dto.CreateMemoryRequest, image *ImageUpload) (*dto.MemoryResponse, error)
	ListAll(ctx context.Context) (*dto.MemoryListResponse, error)
	SearchByReceiver(ctx context.Context, substring string) (*dto.MemoryListResponse, error)
}

type memoryService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobStorage      storage.IBlobStorage
	processor        *imaging.Processor
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewMemoryService(
	uowFactory unitofwork.RepositoryFactory,
	blobStorage storage.IBlobStorage,
	processor *imaging.Processor,
	publisherService IPublisherService,
	log logger.ILogger,
) IMemoryService {
	return &memoryService{
		uowFactory:       uowFactory,
		blobStorage:      blobStorage,
		processor:        processor,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *memoryService) Create(ctx context.Context, req *dto.CreateMemoryRequest, image *ImageUpload) (*dto.MemoryResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, serverutils.NewValidationError("message is required")
	}
	if strings.TrimSpace(req.Receiver) == "" {
		return nil, serverutils.NewValidationError("receiver is required")
	}
	if req.Longitude == nil || req.Latitude == nil {
		return nil, serverutils.NewValidationError("coordinate is required")
	}
	if err := validateCoordinate(*req.Longitude, *req.Latitude); err != nil {
		return nil, err
	}

	memory := entity.Memory{
		Id:        uuid.New(),
		Message:   req.Message,
		Receiver:  req.Receiver,
		Longitude: *req.Longitude,
		Latitude:  *req.Latitude,
		CreatedAt: time.Now(),
	}

	if image != nil && len(image.Data) > 0 {
		key, publicURL, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		memory.ImagePath = key
		memory.ImageURL = publicURL
		memory.HasImage = true
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MemoryRepository().Create(ctx, &memory); err != nil {
		// The blob was written before the insert; remove it so no orphan remains.
		if memory.HasImage {
			if delErr := s.blobStorage.Delete(ctx, memory.ImagePath); delErr != nil {
				s.logger.Error("memory", "compensating image delete failed", map[string]interface{}{
					"key":   memory.ImagePath,
					"error": delErr.Error(),
				})
			}
		}
		return nil, serverutils.NewStorageError("failed to persist memory", err)
	}

	s.publishCreated(ctx, memory.Id)

	res := toMemoryResponse(&memory)
	return &res, nil
}

func (s *memoryService) ListAll(ctx context.Context) (*dto.MemoryListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memories, err := uow.MemoryRepository().FindAll(ctx, specification.OrderByCreatedAt{})
	if err != nil {
		return nil, serverutils.NewStorageError("failed to list memories", err)
	}
	return toMemoryListResponse(memories), nil
}

func (s *memoryService) SearchByReceiver(ctx context.Context, substring string) (*dto.MemoryListResponse, error) {
	if strings.TrimSpace(substring) == "" {
		return nil, serverutils.NewValidationError("receiver query is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	memories, err := uow.MemoryRepository().FindAll(ctx,
		specification.ReceiverContains{Substring: substring},
		specification.OrderByCreatedAt{},
	)
	if err != nil {
		return nil, serverutils.NewStorageError("failed to search memories", err)
	}
	return toMemoryListResponse(memories), nil
}

// uploadImage compresses and stores the attachment. Compression failures fall
// back to the original bytes; only the upload itself can fail the submission.
func (s *memoryService) uploadImage(ctx context.Context, image *ImageUpload) (string, string, error) {
	data := image.Data
	contentType := "image/jpeg"
	ext := ".jpg"

	processed, err := s.processor.Process(image.Data)
	if err != nil {
		s.logger.Warn("memory", "image processing failed, using original file", map[string]interface{}{
			"filename": image.Filename,
			"error":    err.Error(),
		})
		data = image.Data
		if image.ContentType != "" {
			contentType = image.ContentType
		}
		if e := path.Ext(image.Filename); e != "" {
			ext = e
		}
	} else {
		data = processed
	}

	now := time.Now()
	key := fmt.Sprintf("memories/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New(), ext)

	publicURL, err := s.blobStorage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", "", serverutils.NewStorageError("failed to upload image", err)
	}

	return key, publicURL, nil
}

func (s *memoryService) publishCreated(ctx context.Context, id uuid.UUID) {
	payload, err := json.Marshal(dto.PublishMemoryCreatedMessage{MemoryId: id})
	if err != nil {
		return
	}
	// The event fan-out (thumbnail, live feed) is auxiliary; the memory is
	// already persisted, so failures are logged and swallowed.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("memory", "failed to publish MEMORY_CREATED event", map[string]interface{}{
			"memory_id": id,
			"error":     err.Error(),
		})
	}
}

func validateCoordinate(lng, lat float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return serverutils.NewValidationError("coordinate must be finite")
	}
	if lng < -180 || lng > 180 {
		return serverutils.NewValidationError("longitude must be within [-180, 180]")
	}
	if lat < -90 || lat > 90 {
		return serverutils.NewValidationError("latitude must be within [-90, 90]")
	}
	return nil
}

func toMemoryResponse(m *entity.Memory) dto.MemoryResponse {
	return dto.MemoryResponse{
		Id:        m.Id,
		Message:   m.Message,
		Receiver:  m.Receiver,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		HasImage:  m.HasImage,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func toMemoryListResponse(memories []*entity.Memory) *dto.MemoryListResponse {
	responses := make([]dto.MemoryResponse, 0, len(memories))
	for _, m := range memories {
		responses = append(responses, toMemoryResponse(m))
	}
	return &dto.MemoryListResponse{Memories: responses}
}
