package filestorage

import (
	"context"

	"ceylon_travel/internal/domain/models"
)

// Extras хранит поля, которых еще нет в удаленной схеме, в виде объекта id -> поля.
type Extras struct {
	path string
}

func (e *Extras) All(ctx context.Context) (map[string]map[string]any, error) {
	all := map[string]map[string]any{}
	if err := readJSON(ctx, e.path, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Get returns the stored fields for id, or nil when there are none.
func (e *Extras) Get(ctx context.Context, id models.ID) (map[string]any, error) {
	all, err := e.All(ctx)
	if err != nil {
		return nil, err
	}
	return all[id.String()], nil
}

// Put merges fields into the entry for id.
func (e *Extras) Put(ctx context.Context, id models.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	all, err := e.All(ctx)
	if err != nil {
		return err
	}

	entry := all[id.String()]
	if entry == nil {
		entry = map[string]any{}
	}
	for k, v := range fields {
		entry[k] = v
	}
	all[id.String()] = entry

	return writeJSON(ctx, e.path, all)
}

// Delete drops the entry for id. Missing entries are not an error.
func (e *Extras) Delete(ctx context.Context, id models.ID) error {
	all, err := e.All(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[id.String()]; !ok {
		return nil
	}

	delete(all, id.String())
	return writeJSON(ctx, e.path, all)
}
