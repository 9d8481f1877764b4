package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/lib/pq"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/postgresql"
)

// Querier is the part of *pgxpool.Pool the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Table describes one remote table.
type Table struct {
	Name string
	// ExtensionColumns may be missing from an older remote schema. On drift
	// they are stripped and handed back to the caller to keep elsewhere.
	ExtensionColumns []string
	// OptionalColumns may be missing too, but are dropped without being kept.
	OptionalColumns []string
	// BeforeInsert fills derived columns.
	BeforeInsert func(row map[string]any)
}

// Filter narrows List. Zero value lists everything in backend order.
type Filter struct {
	Eq      map[string]any
	OrderBy string
	Desc    bool
	Limit   uint64
}

// Keeper persists stripped extension values before the drift retry runs.
// An error aborts the write, so the remote row is left untouched.
type Keeper func(ctx context.Context, id models.ID, stripped map[string]any) error

// WriteResult is the stored row plus whatever had to be stripped to store it.
type WriteResult struct {
	Row      map[string]any
	Stripped map[string]any
}

type TableRepo struct {
	db      Querier
	sb      sq.StatementBuilderType
	table   Table
	timeout time.Duration
}

func NewTableRepo(db Querier, table Table, timeout time.Duration) *TableRepo {
	return &TableRepo{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		table:   table,
		timeout: timeout,
	}
}

func (r *TableRepo) Table() Table {
	return r.table
}

func (r *TableRepo) List(ctx context.Context, f Filter) ([]map[string]any, error) {
	const op = "repository.table.List"

	builder := r.sb.Select("*").From(pq.QuoteIdentifier(r.table.Name))
	if len(f.Eq) > 0 {
		eq := sq.Eq{}
		for k, v := range f.Eq {
			eq[pq.QuoteIdentifier(k)] = v
		}
		builder = builder.Where(eq)
	}
	if f.OrderBy != "" {
		order := pq.QuoteIdentifier(f.OrderBy)
		if f.Desc {
			order += " DESC"
		}
		builder = builder.OrderBy(order)
	}
	if f.Limit > 0 {
		builder = builder.Limit(f.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (r *TableRepo) Get(ctx context.Context, id models.ID) (map[string]any, error) {
	const op = "repository.table.Get"

	query, args, err := r.sb.Select("*").
		From(pq.QuoteIdentifier(r.table.Name)).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return rows[0], nil
}

// Insert stores a new row. A row without an id gets the table default.
func (r *TableRepo) Insert(ctx context.Context, row map[string]any, keep Keeper) (WriteResult, error) {
	const op = "repository.table.Insert"

	row = copyRow(row)
	if !models.IDFromAny(row["id"]).Valid() {
		delete(row, "id")
	}
	if r.table.BeforeInsert != nil {
		r.table.BeforeInsert(row)
	}

	res, err := r.write(ctx, row, keep, r.insertSQL)
	if err != nil {
		return WriteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Update replaces the columns of an existing row. A missing row is ErrNotFound.
func (r *TableRepo) Update(ctx context.Context, id models.ID, row map[string]any, keep Keeper) (WriteResult, error) {
	const op = "repository.table.Update"

	row = copyRow(row)
	delete(row, "id")
	delete(row, "created_at")
	row["updated_at"] = time.Now().UTC()

	res, err := r.write(ctx, row, keepFor(keep, id), func(row map[string]any) (string, []any, error) {
		return r.updateSQL(id, row)
	})
	if err != nil {
		return WriteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Upsert inserts the row or replaces the one with the same id.
func (r *TableRepo) Upsert(ctx context.Context, row map[string]any, keep Keeper) (WriteResult, error) {
	const op = "repository.table.Upsert"

	if !models.IDFromAny(row["id"]).Valid() {
		return WriteResult{}, fmt.Errorf("%s: %w", op, storage.Validation("upsert requires an id"))
	}

	row = copyRow(row)
	row["updated_at"] = time.Now().UTC()

	res, err := r.write(ctx, row, keep, r.upsertSQL)
	if err != nil {
		return WriteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (r *TableRepo) Delete(ctx context.Context, id models.ID) error {
	const op = "repository.table.Delete"

	query, args, err := r.sb.Delete(pq.QuoteIdentifier(r.table.Name)).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, postgresql.Classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

type sqlFunc func(row map[string]any) (string, []any, error)

// write runs build(row) and, when the remote reports a missing strippable
// column, retries exactly once without it and without every extension column.
func (r *TableRepo) write(ctx context.Context, row map[string]any, keep Keeper, build sqlFunc) (WriteResult, error) {
	stored, err := r.exec(ctx, row, build)
	if err == nil {
		return WriteResult{Row: stored}, nil
	}

	var drift *storage.SchemaDriftError
	if !errors.As(err, &drift) {
		return WriteResult{}, err
	}
	drift.Table = r.table.Name

	if !r.strippable(drift.Column) {
		return WriteResult{}, drift
	}
	if _, ok := row[drift.Column]; !ok {
		return WriteResult{}, drift
	}

	trimmed, stripped := r.strip(row, drift.Column)
	if keep != nil && len(stripped) > 0 {
		if err := keep(ctx, models.IDFromAny(row["id"]), stripped); err != nil {
			return WriteResult{}, err
		}
	}

	stored, err = r.exec(ctx, trimmed, build)
	if err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Row: stored, Stripped: stripped}, nil
}

// keepFor binds the route id for updates, whose rows carry no id.
func keepFor(keep Keeper, id models.ID) Keeper {
	if keep == nil {
		return nil
	}
	return func(ctx context.Context, _ models.ID, stripped map[string]any) error {
		return keep(ctx, id, stripped)
	}
}

func (r *TableRepo) exec(ctx context.Context, row map[string]any, build sqlFunc) (map[string]any, error) {
	query, args, err := build(encodeRow(row))
	if err != nil {
		return nil, fmt.Errorf("can't build sql: %w", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0], nil
}

func (r *TableRepo) strippable(column string) bool {
	return contains(r.table.ExtensionColumns, column) || contains(r.table.OptionalColumns, column)
}

// strip removes the drifted column and every extension column. Extension
// values are returned so the caller can keep them; optional ones are dropped.
func (r *TableRepo) strip(row map[string]any, column string) (map[string]any, map[string]any) {
	trimmed := copyRow(row)
	stripped := map[string]any{}

	drop := append([]string{column}, r.table.ExtensionColumns...)
	for _, c := range drop {
		v, ok := trimmed[c]
		if !ok {
			continue
		}
		delete(trimmed, c)
		if contains(r.table.ExtensionColumns, c) {
			stripped[c] = v
		}
	}
	return trimmed, stripped
}

func (r *TableRepo) insertSQL(row map[string]any) (string, []any, error) {
	cols, vals := columns(row)
	return r.sb.Insert(pq.QuoteIdentifier(r.table.Name)).
		Columns(quoteAll(cols)...).
		Values(vals...).
		Suffix("RETURNING *").
		ToSql()
}

func (r *TableRepo) updateSQL(id models.ID, row map[string]any) (string, []any, error) {
	cols, vals := columns(row)
	if len(cols) == 0 {
		return "", nil, storage.Validation("nothing to update")
	}

	builder := r.sb.Update(pq.QuoteIdentifier(r.table.Name))
	for i, c := range cols {
		builder = builder.Set(pq.QuoteIdentifier(c), vals[i])
	}
	return builder.
		Where(sq.Eq{"id": id.String()}).
		Suffix("RETURNING *").
		ToSql()
}

func (r *TableRepo) upsertSQL(row map[string]any) (string, []any, error) {
	cols, vals := columns(row)

	set := ""
	for _, c := range cols {
		if c == "id" || c == "created_at" {
			continue
		}
		if set != "" {
			set += ", "
		}
		q := pq.QuoteIdentifier(c)
		set += q + " = EXCLUDED." + q
	}
	conflict := "ON CONFLICT (id) DO NOTHING RETURNING *"
	if set != "" {
		conflict = "ON CONFLICT (id) DO UPDATE SET " + set + " RETURNING *"
	}

	return r.sb.Insert(pq.QuoteIdentifier(r.table.Name)).
		Columns(quoteAll(cols)...).
		Values(vals...).
		Suffix(conflict).
		ToSql()
}

func (r *TableRepo) query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgresql.Classify(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, postgresql.Classify(err)
		}

		row := make(map[string]any, len(fields))
		for i, f := range fields {
			if i < len(values) {
				row[string(f.Name)] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, postgresql.Classify(err)
	}

	return out, nil
}

func (r *TableRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// encodeRow prepares values for the wire: lists and objects go to jsonb
// columns as JSON text, ids are always text.
func encodeRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		switch t := v.(type) {
		case []any, []string, []map[string]any, map[string]any, models.SiteContent:
			data, err := json.Marshal(t)
			if err != nil {
				continue
			}
			out[k] = string(data)
		default:
			out[k] = v
		}
	}
	if id, ok := out["id"]; ok {
		out["id"] = models.IDFromAny(id).String()
	}
	return out
}

// columns returns sorted column names so generated SQL is stable.
func columns(row map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	vals := make([]any, len(cols))
	for i, c := range cols {
		vals[i] = row[c]
	}
	return cols, vals
}

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pq.QuoteIdentifier(c)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
