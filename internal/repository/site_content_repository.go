package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ceylon_travel/internal/storage"
)

const siteContentID = "main"

// SiteContentRepo keeps the whole site content document in one jsonb column.
type SiteContentRepo struct {
	rows *TableRepo
}

func NewSiteContentRepo(db Querier, timeout time.Duration) *SiteContentRepo {
	return &SiteContentRepo{
		rows: NewTableRepo(db, Table{Name: TableSiteContent, OptionalColumns: timestampColumns}, timeout),
	}
}

// Load returns the persisted document, or an empty map when none was saved.
func (r *SiteContentRepo) Load(ctx context.Context) (map[string]any, error) {
	const op = "repository.site_content.Load"

	row, err := r.rows.Get(ctx, siteContentID)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contentOf(row["content"]), nil
}

func (r *SiteContentRepo) Save(ctx context.Context, doc map[string]any) error {
	const op = "repository.site_content.Save"

	if doc == nil {
		doc = map[string]any{}
	}
	_, err := r.rows.Upsert(ctx, map[string]any{"id": siteContentID, "content": doc}, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func contentOf(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		var out map[string]any
		if json.Unmarshal([]byte(t), &out) == nil && out != nil {
			return out
		}
	case []byte:
		var out map[string]any
		if json.Unmarshal(t, &out) == nil && out != nil {
			return out
		}
	}
	return map[string]any{}
}
