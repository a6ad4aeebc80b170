package mapper

import (
	"memory-map-be/internal/entity"
	"memory-map-be/internal/model"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) ToEntity(mem *model.Memory) *entity.Memory {
	if mem == nil {
		return nil
	}

	return &entity.Memory{
		Id:        mem.Id,
		Message:   mem.Message,
		Receiver:  mem.Receiver,
		Longitude: mem.Longitude,
		Latitude:  mem.Latitude,
		ImagePath: mem.ImagePath,
		ImageURL:  mem.ImageURL,
		HasImage:  mem.HasImage,
		CreatedAt: mem.CreatedAt,
	}
}

func (m *MemoryMapper) ToModel(mem *entity.Memory) *model.Memory {
	if mem == nil {
		return nil
	}

	return &model.Memory{
		Id:        mem.Id,
		Message:   mem.Message,
		Receiver:  mem.Receiver,
		Longitude: mem.Longitude,
		Latitude:  mem.Latitude,
		ImagePath: mem.ImagePath,
		ImageURL:  mem.ImageURL,
		HasImage:  mem.HasImage,
		CreatedAt: mem.CreatedAt,
	}
}

func (m *MemoryMapper) ToEntities(memories []*model.Memory) []*entity.Memory {
	entities := make([]*entity.Memory, len(memories))
	for i, mem := range memories {
		entities[i] = m.ToEntity(mem)
	}
	return entities
}
