package unitofwork

import (
	"context"

	"memory-map-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MemoryRepository() contract.MemoryRepository
}
