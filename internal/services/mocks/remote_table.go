package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/repository"
)

// RemoteTable реализация мок-репозитория удаленной таблицы
type RemoteTable struct {
	mock.Mock
}

func (m *RemoteTable) List(ctx context.Context, f repository.Filter) ([]map[string]any, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *RemoteTable) Get(ctx context.Context, id models.ID) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *RemoteTable) Insert(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error) {
	args := m.Called(ctx, row, keep)
	return args.Get(0).(repository.WriteResult), args.Error(1)
}

func (m *RemoteTable) Update(ctx context.Context, id models.ID, row map[string]any, keep repository.Keeper) (repository.WriteResult, error) {
	args := m.Called(ctx, id, row, keep)
	return args.Get(0).(repository.WriteResult), args.Error(1)
}

func (m *RemoteTable) Upsert(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error) {
	args := m.Called(ctx, row, keep)
	return args.Get(0).(repository.WriteResult), args.Error(1)
}

func (m *RemoteTable) Delete(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Document мок для документа контента сайта
type Document struct {
	mock.Mock
}

func (m *Document) Load(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *Document) Save(ctx context.Context, doc map[string]any) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
