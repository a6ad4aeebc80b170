package implementation_test

import (
	"context"
	"log"
	"os"
	"testing"

	"memory-map-be/internal/entity"
	"memory-map-be/internal/repository/specification"
	"memory-map-be/internal/repository/unitofwork"
	"memory-map-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormMemoryRepository(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	repo := uow.MemoryRepository()
	assert.NotNil(t, repo)

	ctx := context.Background()
	receiver := "integration-" + uuid.New().String()

	memory := &entity.Memory{
		Message:   "integration test memory",
		Receiver:  receiver,
		Longitude: 10.0,
		Latitude:  20.0,
	}
	assert.NoError(t, repo.Create(ctx, memory))
	assert.NotEqual(t, uuid.Nil, memory.Id)

	t.Run("FindOne by id", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.ByID{ID: memory.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, receiver, found.Receiver)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("Search is case-insensitive", func(t *testing.T) {
		upper, err := repo.FindAll(ctx, specification.ReceiverContains{Substring: "INTEGRATION-"})
		assert.NoError(t, err)
		lower, err := repo.FindAll(ctx, specification.ReceiverContains{Substring: "integration-"})
		assert.NoError(t, err)
		assert.Equal(t, len(upper), len(lower))
		assert.NotEmpty(t, upper)
	})

	t.Run("Count matches", func(t *testing.T) {
		count, err := repo.Count(ctx, specification.ReceiverContains{Substring: receiver})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("FindOne unknown id is nil without error", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}
