package dispatch

import (
	"context"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/repository"
)

// RemoteTable is implemented by *repository.TableRepo.
type RemoteTable interface {
	List(ctx context.Context, f repository.Filter) ([]map[string]any, error)
	Get(ctx context.Context, id models.ID) (map[string]any, error)
	Insert(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error)
	Update(ctx context.Context, id models.ID, row map[string]any, keep repository.Keeper) (repository.WriteResult, error)
	Upsert(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error)
	Delete(ctx context.Context, id models.ID) error
}

// FileTable is implemented by *filestorage.Collection.
type FileTable interface {
	List(ctx context.Context) ([]map[string]any, error)
	Get(ctx context.Context, id models.ID) (map[string]any, error)
	Insert(ctx context.Context, row map[string]any) (map[string]any, error)
	Update(ctx context.Context, id models.ID, row map[string]any) (map[string]any, error)
	Upsert(ctx context.Context, row map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id models.ID) error
}

// ExtrasStore is implemented by *filestorage.Extras.
type ExtrasStore interface {
	All(ctx context.Context) (map[string]map[string]any, error)
	Get(ctx context.Context, id models.ID) (map[string]any, error)
	Put(ctx context.Context, id models.ID, fields map[string]any) error
	Delete(ctx context.Context, id models.ID) error
}

// DocumentStore is implemented by *filestorage.Document and *repository.SiteContentRepo.
type DocumentStore interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, doc map[string]any) error
}
