package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bunchhieng/bark/internal/model"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ColumnDef is one column of a CREATE TABLE statement.
type ColumnDef struct {
	Name string
	Type string
}

// Gateway owns the SQLite connection and runs parameterized statements
// against it. Values are always bound; only identifiers are interpolated.
type Gateway struct {
	db *sqlx.DB
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NewGateway opens the database at dbPath, creating its directory if needed.
func NewGateway(dbPath string) (*Gateway, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	var dsn string
	if dbPath == ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(DELETE)&_pragma=synchronous(NORMAL)"
	} else {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer, one handle for the process lifetime. This also keeps a
	// :memory: database alive across statements.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Gateway{db: db}, nil
}

// CreateTable creates table with the given columns unless it already exists.
func (g *Gateway) CreateTable(ctx context.Context, table string, columns []ColumnDef) error {
	if err := checkIdent(table); err != nil {
		return err
	}
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		if err := checkIdent(c.Name); err != nil {
			return err
		}
		defs = append(defs, c.Name+" "+c.Type)
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
	if _, err := g.exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// Insert adds a row and returns the ID assigned by the database.
func (g *Gateway) Insert(ctx context.Context, table string, data map[string]any) (int64, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, fmt.Errorf("insert into %s: no values", table)
	}

	names := sortedKeys(data)
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		if err := checkIdent(name); err != nil {
			return 0, err
		}
		placeholders[i] = "?"
		args[i] = data[name]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	result, err := g.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get inserted id: %w", err)
	}
	return id, nil
}

// Select scans the rows of table matching every criteria equality into dest,
// a pointer to a slice of structs with db tags. orderBy may be empty.
func (g *Gateway) Select(ctx context.Context, dest any, table string, criteria map[string]any, orderBy model.Column) error {
	if err := checkIdent(table); err != nil {
		return err
	}

	query := "SELECT * FROM " + table
	where, args, err := whereClause(criteria)
	if err != nil {
		return err
	}
	query += where

	if orderBy != "" {
		if !orderBy.Sortable() {
			return fmt.Errorf("%w: cannot order by %q", model.ErrInvalidColumn, orderBy)
		}
		query += " ORDER BY " + string(orderBy)
	}

	if err := g.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("select from %s: %w", table, err)
	}
	return nil
}

// Update sets the columns in set on every row matching match and returns the
// number of rows affected.
func (g *Gateway) Update(ctx context.Context, table string, set, match map[string]any) (int64, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	if len(set) == 0 {
		return 0, model.ErrNoChanges
	}

	names := sortedKeys(set)
	assignments := make([]string, len(names))
	args := make([]any, 0, len(set)+len(match))
	for i, name := range names {
		if err := checkIdent(name); err != nil {
			return 0, err
		}
		assignments[i] = name + " = ?"
		args = append(args, set[name])
	}

	where, whereArgs, err := whereClause(match)
	if err != nil {
		return 0, err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(assignments, ", "), where)
	result, err := g.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", table, err)
	}
	return rowsAffected(result)
}

// Delete removes every row matching match and returns the number removed.
func (g *Gateway) Delete(ctx context.Context, table string, match map[string]any) (int64, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	// An empty match would delete the whole table.
	if len(match) == 0 {
		return 0, fmt.Errorf("delete from %s: no criteria", table)
	}

	where, args, err := whereClause(match)
	if err != nil {
		return 0, err
	}

	result, err := g.exec(ctx, "DELETE FROM "+table+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return rowsAffected(result)
}

// Close closes the database connection.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// exec runs a single statement in its own transaction.
func (g *Gateway) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

func whereClause(criteria map[string]any) (string, []any, error) {
	if len(criteria) == 0 {
		return "", nil, nil
	}
	names := sortedKeys(criteria)
	preds := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		if err := checkIdent(name); err != nil {
			return "", nil, err
		}
		preds[i] = name + " = ?"
		args[i] = criteria[name]
	}
	return " WHERE " + strings.Join(preds, " AND "), args, nil
}

func checkIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("%w: %q", model.ErrInvalidColumn, name)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}
