package implementation

import (
	"context"
	"errors"

	"memory-map-be/internal/entity"
	"memory-map-be/internal/mapper"
	"memory-map-be/internal/model"
	"memory-map-be/internal/repository/contract"
	"memory-map-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MemoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewMemoryRepository(db *gorm.DB) contract.MemoryRepository {
	return &MemoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *MemoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemoryRepositoryImpl) Create(ctx context.Context, memory *entity.Memory) error {
	m := r.mapper.ToModel(memory)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*memory = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memory, error) {
	var m model.Memory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MemoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memory, error) {
	var models []*model.Memory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MemoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Memory{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
