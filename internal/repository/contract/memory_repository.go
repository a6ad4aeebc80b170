package contract

import (
	"context"

	"memory-map-be/internal/entity"
	"memory-map-be/internal/repository/specification"
)

// MemoryRepository has no Update or Delete: memories are immutable once created.
type MemoryRepository interface {
	Create(ctx context.Context, memory *entity.Memory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
