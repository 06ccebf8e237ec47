package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
)

// MockGameRepository is a mock implementation of repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Save(ctx context.Context, gameType, id string, doc *models.GameDocV2) error {
	args := m.Called(ctx, gameType, id, doc)
	return args.Error(0)
}

func (m *MockGameRepository) Get(ctx context.Context, gameType, id string) (*models.GameResult, error) {
	args := m.Called(ctx, gameType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameResult), args.Error(1)
}

func (m *MockGameRepository) ListByType(ctx context.Context, gameType string) ([]models.GameResult, error) {
	args := m.Called(ctx, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameResult), args.Error(1)
}

func (m *MockGameRepository) ListVersion(ctx context.Context, gameType string, dataVersion int) ([]repository.RawGameDoc, error) {
	args := m.Called(ctx, gameType, dataVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RawGameDoc), args.Error(1)
}

func (m *MockGameRepository) ReplaceDoc(ctx context.Context, gameType, id string, dataVersion int, data json.RawMessage) error {
	args := m.Called(ctx, gameType, id, dataVersion, data)
	return args.Error(0)
}
