package postgresql

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"ceylon_travel/internal/storage"
)

const (
	undefinedColumn = "42703"
	uniqueViolation = "23505"
)

var columnPattern = regexp.MustCompile(`column "([^"]+)"`)

// Classify maps a driver error onto the storage taxonomy.
//
//	no rows                         -> ErrNotFound
//	42703 undefined_column          -> *SchemaDriftError
//	23 integrity violations         -> ErrValidation (duplicate id, missing field)
//	08, 28, 53, 57 classes          -> ErrBackendUnavailable
//	any non-postgres error          -> ErrBackendUnavailable (network, deadline, dial)
//	other SQLSTATE                  -> returned as is
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, storage.ErrBackendUnavailable) ||
		errors.Is(err, storage.ErrSchemaDrift) ||
		errors.Is(err, storage.ErrValidation) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}

	if pgErr.Code == undefinedColumn {
		drift := &storage.SchemaDriftError{Table: pgErr.TableName, Column: pgErr.ColumnName}
		if m := columnPattern.FindStringSubmatch(pgErr.Message); drift.Column == "" && len(m) == 2 {
			drift.Column = m[1]
		}
		return drift
	}

	if len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "23": // integrity constraint violation
			return integrity(pgErr)
		case "08", // connection exception
			"28", // invalid authorization
			"53", // insufficient resources
			"57": // operator intervention, includes statement timeout
			return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
		}
	}

	return err
}

// integrity keeps the remote answer in line with the file store, which
// rejects a duplicate id as a validation error.
func integrity(pgErr *pgconn.PgError) error {
	msg := pgErr.Detail
	if msg == "" {
		msg = pgErr.Message
	}
	if pgErr.Code == uniqueViolation && msg == "" {
		msg = "record already exists"
	}
	if pgErr.ConstraintName != "" {
		msg = fmt.Sprintf("%s (constraint %s)", msg, pgErr.ConstraintName)
	}
	return storage.Validation("%s", msg)
}
