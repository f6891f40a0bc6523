package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"davazen/internal/cases/domain/entities"
)

type mockCaseRepository struct {
	mock.Mock
}

func (m *mockCaseRepository) Create(ctx context.Context, c *entities.Case) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCaseRepository) Get(ctx context.Context, id string) (*entities.Case, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*entities.Case); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCaseRepository) Put(ctx context.Context, c *entities.Case) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCaseRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCaseRepository) List(ctx context.Context) ([]*entities.Case, error) {
	args := m.Called(ctx)
	if cs, ok := args.Get(0).([]*entities.Case); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
