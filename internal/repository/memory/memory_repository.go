package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"memory-map-be/internal/entity"
	"memory-map-be/internal/repository/contract"
	"memory-map-be/internal/repository/specification"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory contract.MemoryRepository. It interprets
// the known specification types directly so service code can run without a
// database (tests, local tooling).
type MemoryRepository struct {
	mu       sync.RWMutex
	memories []*entity.Memory
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

var _ contract.MemoryRepository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Create(ctx context.Context, memory *entity.Memory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if memory.Id == uuid.Nil {
		memory.Id = uuid.New()
	}
	stored := *memory
	r.memories = append(r.memories, &stored)
	return nil
}

func (r *MemoryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memory, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Memory, 0, len(r.memories))
	for _, m := range r.memories {
		if matches(m, specs) {
			copied := *m
			result = append(result, &copied)
		}
	}

	for _, spec := range specs {
		if order, ok := spec.(specification.OrderByCreatedAt); ok {
			sort.SliceStable(result, func(i, j int) bool {
				if order.Descending {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		}
	}

	return result, nil
}

func (r *MemoryRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func matches(m *entity.Memory, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ReceiverContains:
			if !strings.Contains(strings.ToLower(m.Receiver), strings.ToLower(s.Substring)) {
				return false
			}
		}
	}
	return true
}
