// Package sqlite is the modernc.org/sqlite-backed history.Store,
// grounded on server/dao/sqlite/commands.go's migration-on-open and
// query style.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/symcalc/internal/history"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

type store struct {
	db *sql.DB
}

// New opens (creating if necessary) a history database file named
// "history.db" inside dataDir, and ensures its schema exists.
func New(dataDir string) (history.Store, error) {
	s := &store{}

	fileName := filepath.Join(dataDir, "history.db")
	var err error
	s.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	if err := s.init(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id TEXT NOT NULL PRIMARY KEY,
		kind TEXT NOT NULL,
		input TEXT NOT NULL,
		target TEXT NOT NULL,
		result_text TEXT NOT NULL,
		result_value REAL,
		has_result_value INTEGER NOT NULL,
		ast BLOB NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (s *store) Create(ctx context.Context, r history.Record) (history.Record, error) {
	newID, err := uuid.NewRandom()
	if err != nil {
		return history.Record{}, fmt.Errorf("could not generate ID: %w", err)
	}
	r.ID = newID
	r.Created = time.Now()

	var resultValue float64
	var hasResultValue int
	if r.ResultValue != nil {
		resultValue = *r.ResultValue
		hasResultValue = 1
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO history
		(id, kind, input, target, result_text, result_value, has_result_value, ast, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(),
		string(r.Kind),
		r.Input,
		r.Target,
		r.ResultText,
		resultValue,
		hasResultValue,
		r.AST,
		r.Created.Unix(),
	)
	if err != nil {
		return history.Record{}, wrapDBError(err)
	}

	return r, nil
}

func (s *store) GetByID(ctx context.Context, id uuid.UUID) (history.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT kind, input, target, result_text, result_value, has_result_value, ast, created
		FROM history WHERE id = ?;`, id.String())

	return scanRecord(id, row.Scan)
}

func (s *store) GetAll(ctx context.Context) ([]history.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, input, target, result_text, result_value, has_result_value, ast, created
		FROM history ORDER BY created ASC;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []history.Record
	for rows.Next() {
		var idStr string
		var r history.Record
		var kind string
		var resultValue float64
		var hasResultValue int
		var created int64

		err := rows.Scan(&idStr, &kind, &r.Input, &r.Target, &r.ResultText, &resultValue, &hasResultValue, &r.AST, &created)
		if err != nil {
			return nil, wrapDBError(err)
		}

		r.ID, err = uuid.Parse(idStr)
		if err != nil {
			return all, fmt.Errorf("stored ID %q is invalid: %w", idStr, err)
		}
		r.Kind = history.Kind(kind)
		if hasResultValue != 0 {
			v := resultValue
			r.ResultValue = &v
		}
		r.Created = time.Unix(created, 0)

		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

type scanFunc func(dest ...interface{}) error

func scanRecord(id uuid.UUID, scan scanFunc) (history.Record, error) {
	r := history.Record{ID: id}
	var kind string
	var resultValue float64
	var hasResultValue int
	var created int64

	err := scan(&kind, &r.Input, &r.Target, &r.ResultText, &resultValue, &hasResultValue, &r.AST, &created)
	if err != nil {
		return history.Record{}, wrapDBError(err)
	}

	r.Kind = history.Kind(kind)
	if hasResultValue != 0 {
		v := resultValue
		r.ResultValue = &v
	}
	r.Created = time.Unix(created, 0)

	return r, nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return history.ErrNotFound
	}
	return err
}
