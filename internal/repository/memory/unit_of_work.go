package memory

import (
	"context"

	"memory-map-be/internal/repository/contract"
	"memory-map-be/internal/repository/unitofwork"
)

// Factory hands out units of work backed by a single shared in-memory
// repository. Begin/Commit/Rollback are no-ops: there is nothing transactional
// to protect here.
type Factory struct {
	repo *MemoryRepository
}

func NewFactory() *Factory {
	return &Factory{repo: NewMemoryRepository()}
}

func (f *Factory) Repo() *MemoryRepository {
	return f.repo
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{repo: f.repo}
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)

type unitOfWork struct {
	repo *MemoryRepository
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) MemoryRepository() contract.MemoryRepository {
	return u.repo
}
