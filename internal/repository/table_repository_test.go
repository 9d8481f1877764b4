package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/storage"
)

type call struct {
	sql  string
	args []any
}

type response struct {
	rows []map[string]any
	err  error
}

// fakeQuerier replays queued responses and records every statement.
type fakeQuerier struct {
	responses []response
	calls     []call
	tag       pgconn.CommandTag
	execErr   error
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	if len(f.responses) == 0 {
		return &fakeRows{}, nil
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	if r.err != nil {
		return nil, r.err
	}
	return newFakeRows(r.rows), nil
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.tag, f.execErr
}

type fakeRows struct {
	fields []pgproto3.FieldDescription
	values [][]any
	pos    int
}

func newFakeRows(rows []map[string]any) *fakeRows {
	r := &fakeRows{pos: -1}
	if len(rows) == 0 {
		return r
	}
	var names []string
	for k := range rows[0] {
		names = append(names, k)
		r.fields = append(r.fields, pgproto3.FieldDescription{Name: []byte(k)})
	}
	for _, row := range rows {
		vals := make([]any, len(names))
		for i, n := range names {
			vals[i] = row[n]
		}
		r.values = append(r.values, vals)
	}
	return r
}

func (r *fakeRows) Close()                                         {}
func (r *fakeRows) Err() error                                     { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                  { return nil }
func (r *fakeRows) FieldDescriptions() []pgproto3.FieldDescription { return r.fields }
func (r *fakeRows) Scan(...interface{}) error                      { return errors.New("not supported") }
func (r *fakeRows) RawValues() [][]byte                            { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.values)
}

func (r *fakeRows) Values() ([]interface{}, error) {
	return r.values[r.pos], nil
}

func driftErr(column string) error {
	return &pgconn.PgError{
		Code:    "42703",
		Message: `column "` + column + `" of relation "destinations" does not exist`,
	}
}

func TestTableRepo_InsertRetriesWithoutExtensionColumns(t *testing.T) {
	db := &fakeQuerier{responses: []response{
		{err: driftErr("gallery")},
		{rows: []map[string]any{{"id": "galle", "name": "Galle"}}},
	}}
	repo := NewDestinationRepo(db, time.Second)

	res, err := repo.Insert(context.Background(), map[string]any{
		"id":           "galle",
		"name":         "Galle",
		"gallery":      []string{"a.jpg"},
		"things_to_do": []any{map[string]any{"name": "Fort"}},
	}, nil)
	require.NoError(t, err)

	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].sql, `"gallery"`)
	assert.NotContains(t, db.calls[1].sql, `"gallery"`)
	assert.NotContains(t, db.calls[1].sql, `"things_to_do"`)

	assert.Equal(t, "Galle", res.Row["name"])
	assert.Equal(t, []string{"a.jpg"}, res.Stripped["gallery"])
	assert.Contains(t, res.Stripped, "things_to_do")
}

func TestTableRepo_KeeperRunsBeforeRetry(t *testing.T) {
	db := &fakeQuerier{responses: []response{
		{err: driftErr("things_to_do")},
		{rows: []map[string]any{{"id": "galle"}}},
	}}
	repo := NewDestinationRepo(db, time.Second)

	var kept map[string]any
	var keptID string
	keep := func(_ context.Context, id models.ID, stripped map[string]any) error {
		require.Len(t, db.calls, 1, "keeper runs before the retry")
		keptID, kept = id.String(), stripped
		return nil
	}

	_, err := repo.Update(context.Background(), "galle", map[string]any{"name": "Galle", "things_to_do": []any{}}, keep)
	require.NoError(t, err)
	assert.Equal(t, "galle", keptID)
	assert.Contains(t, kept, "things_to_do")
}

func TestTableRepo_KeeperErrorAbortsWrite(t *testing.T) {
	db := &fakeQuerier{responses: []response{{err: driftErr("gallery")}}}
	repo := NewDestinationRepo(db, time.Second)

	keep := func(context.Context, models.ID, map[string]any) error { return storage.ErrConfiguration }

	_, err := repo.Upsert(context.Background(), map[string]any{"id": "g", "gallery": []string{"a"}}, keep)
	assert.ErrorIs(t, err, storage.ErrConfiguration)
	assert.Len(t, db.calls, 1, "no retry after the keeper failed")
}

func TestTableRepo_DriftOnCoreColumnIsNotRetried(t *testing.T) {
	db := &fakeQuerier{responses: []response{{err: driftErr("region")}}}
	repo := NewDestinationRepo(db, time.Second)

	_, err := repo.Upsert(context.Background(), map[string]any{"id": "x", "region": "South"}, nil)

	require.ErrorIs(t, err, storage.ErrSchemaDrift)
	var drift *storage.SchemaDriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, "region", drift.Column)
	assert.Equal(t, TableDestinations, drift.Table)
	assert.Len(t, db.calls, 1)
}

func TestTableRepo_SecondDriftSurfaces(t *testing.T) {
	db := &fakeQuerier{responses: []response{
		{err: driftErr("gallery")},
		{err: driftErr("updated_at")},
	}}
	repo := NewDestinationRepo(db, time.Second)

	_, err := repo.Upsert(context.Background(), map[string]any{"id": "x", "gallery": []string{}}, nil)

	assert.ErrorIs(t, err, storage.ErrSchemaDrift)
	assert.Len(t, db.calls, 2, "exactly one retry")
}

func TestTableRepo_UpdateMissingRow(t *testing.T) {
	db := &fakeQuerier{responses: []response{{rows: nil}}}
	repo := NewTourRepo(db, time.Second)

	_, err := repo.Update(context.Background(), "t1", map[string]any{"id": "other", "name": "x"}, nil)

	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Len(t, db.calls, 1)
	assert.True(t, strings.HasPrefix(db.calls[0].sql, `UPDATE "tours" SET`))
	assert.Contains(t, db.calls[0].args, "t1", "route id addresses the row")
	assert.NotContains(t, db.calls[0].args, "other")
}

func TestTableRepo_Delete(t *testing.T) {
	db := &fakeQuerier{tag: pgconn.CommandTag("DELETE 0")}
	repo := NewBlogRepo(db, time.Second)

	assert.ErrorIs(t, repo.Delete(context.Background(), "7"), storage.ErrNotFound)

	db.tag = pgconn.CommandTag("DELETE 1")
	assert.NoError(t, repo.Delete(context.Background(), "7"))
}

func TestTableRepo_BlogInsertFillsSlug(t *testing.T) {
	db := &fakeQuerier{responses: []response{{rows: []map[string]any{{"id": int64(1)}}}}}
	repo := NewBlogRepo(db, time.Second)

	_, err := repo.Insert(context.Background(), map[string]any{"id": int64(0), "title": "Whale Watching in Mirissa"}, nil)
	require.NoError(t, err)

	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, `"slug"`)
	assert.NotContains(t, db.calls[0].sql, `"id"`, "invalid ids are left to the table default")
	assert.Contains(t, db.calls[0].args, "whale-watching-in-mirissa")
}

func TestTableRepo_UpsertSQL(t *testing.T) {
	db := &fakeQuerier{responses: []response{{rows: []map[string]any{{"id": "g"}}}}}
	repo := NewDestinationRepo(db, time.Second)

	_, err := repo.Upsert(context.Background(), map[string]any{"id": "g", "name": "Galle", "gallery": []string{"a"}}, nil)
	require.NoError(t, err)

	sql := db.calls[0].sql
	assert.Contains(t, sql, `ON CONFLICT (id) DO UPDATE SET`)
	assert.Contains(t, sql, `"name" = EXCLUDED."name"`)
	assert.NotContains(t, sql, `"id" = EXCLUDED`)
	assert.Contains(t, db.calls[0].args, `["a"]`, "lists travel as json text")
}

func TestTableRepo_ListFilter(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewTourRepo(db, time.Second)

	rows, err := repo.List(context.Background(), Filter{
		Eq:      map[string]any{"featured": true},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   6,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, `SELECT * FROM "tours" WHERE "featured" = $1 ORDER BY "created_at" DESC LIMIT 6`, db.calls[0].sql)
}

func TestTableRepo_Unavailable(t *testing.T) {
	db := &fakeQuerier{responses: []response{{err: context.DeadlineExceeded}}}
	repo := NewTourRepo(db, time.Second)

	_, err := repo.Get(context.Background(), "t1")
	assert.ErrorIs(t, err, storage.ErrBackendUnavailable)
}

func TestSiteContentRepo(t *testing.T) {
	db := &fakeQuerier{responses: []response{
		{rows: nil},
		{rows: []map[string]any{{"id": "main", "content": map[string]any{"hero": map[string]any{"title": "X"}}}}},
	}}
	repo := NewSiteContentRepo(db, time.Second)

	doc, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc)

	doc, err = repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", doc["hero"].(map[string]any)["title"])
}
