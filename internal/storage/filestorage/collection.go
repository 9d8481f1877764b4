package filestorage

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/storage"
)

// IDPolicy decides how Insert assigns ids to rows that arrive without one.
type IDPolicy int

const (
	// UUIDs assigns a random uuid.
	UUIDs IDPolicy = iota
	// NumericIDs assigns max(existing numeric ids) + 1, starting at 1.
	NumericIDs
)

// Collection is one JSON array of raw rows.
type Collection struct {
	path string
	ids  IDPolicy
}

func (c *Collection) List(ctx context.Context) ([]map[string]any, error) {
	rows := []map[string]any{}
	if err := readJSON(ctx, c.path, &rows); err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, r := range rows {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *Collection) Get(ctx context.Context, id models.ID) (map[string]any, error) {
	rows, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(rows, id); i >= 0 {
		return rows[i], nil
	}
	return nil, storage.ErrNotFound
}

// Insert appends row. A row without a usable id gets one from the policy;
// a caller supplied id must not collide with an existing row.
func (c *Collection) Insert(ctx context.Context, row map[string]any) (map[string]any, error) {
	rows, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	row = copyRow(row)
	id := models.IDFromAny(row["id"])
	if id.Valid() {
		if indexOf(rows, id) >= 0 {
			return nil, storage.Validation("id %s already exists", id)
		}
	} else {
		id = c.nextID(rows)
	}
	row["id"] = idValue(id)

	now := time.Now().UTC()
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	row["updated_at"] = now

	rows = append(rows, row)
	if err := writeJSON(ctx, c.path, rows); err != nil {
		return nil, err
	}
	return row, nil
}

// Update replaces the stored row with the given id. The row must exist.
func (c *Collection) Update(ctx context.Context, id models.ID, row map[string]any) (map[string]any, error) {
	rows, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(rows, id)
	if i < 0 {
		return nil, storage.ErrNotFound
	}

	rows[i] = replaceRow(rows[i], row)
	if err := writeJSON(ctx, c.path, rows); err != nil {
		return nil, err
	}
	return rows[i], nil
}

// Upsert replaces the row with the same id or appends it when absent.
func (c *Collection) Upsert(ctx context.Context, row map[string]any) (map[string]any, error) {
	id := models.IDFromAny(row["id"])
	if !id.Valid() {
		return nil, storage.Validation("upsert requires an id")
	}

	rows, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(rows, id)
	if i < 0 {
		fresh := copyRow(row)
		now := time.Now().UTC()
		if _, ok := fresh["created_at"]; !ok {
			fresh["created_at"] = now
		}
		fresh["updated_at"] = now
		rows = append(rows, fresh)
		i = len(rows) - 1
	} else {
		rows[i] = replaceRow(rows[i], row)
	}

	if err := writeJSON(ctx, c.path, rows); err != nil {
		return nil, err
	}
	return rows[i], nil
}

func (c *Collection) Delete(ctx context.Context, id models.ID) error {
	rows, err := c.List(ctx)
	if err != nil {
		return err
	}

	i := indexOf(rows, id)
	if i < 0 {
		return storage.ErrNotFound
	}

	rows = append(rows[:i], rows[i+1:]...)
	return writeJSON(ctx, c.path, rows)
}

func (c *Collection) nextID(rows []map[string]any) models.ID {
	if c.ids == UUIDs {
		return models.ID(uuid.NewString())
	}

	var max int64
	for _, r := range rows {
		if n, ok := models.IDFromAny(r["id"]).Int(); ok && n > max {
			max = n
		}
	}

	// max+1 never reuses a gap left by a delete; the loop re-checks the full set
	next := max + 1
	for indexOf(rows, models.ID(strconv.FormatInt(next, 10))) >= 0 {
		next++
	}
	return models.ID(strconv.FormatInt(next, 10))
}

func indexOf(rows []map[string]any, id models.ID) int {
	if !id.Valid() {
		return -1
	}
	for i, r := range rows {
		if models.IDFromAny(r["id"]) == id {
			return i
		}
	}
	return -1
}

// replaceRow is a full document replace that keeps identity and creation time.
func replaceRow(old, row map[string]any) map[string]any {
	out := copyRow(row)
	out["id"] = old["id"]
	if created, ok := old["created_at"]; ok {
		out["created_at"] = created
	}
	out["updated_at"] = time.Now().UTC()
	return out
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row)+3)
	for k, v := range row {
		out[k] = v
	}
	return out
}

// idValue keeps numeric ids numeric in the JSON file.
func idValue(id models.ID) any {
	if n, ok := id.Int(); ok {
		return n
	}
	return string(id)
}
