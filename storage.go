package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/sivukhin/likwid-parser/perfctr"
)

// Storage mirrors parsed tables into a SQLite-family database, either a
// local file or a remote libsql instance. Every row is tagged with the
// batch that wrote it.
type Storage struct {
	Batch string
}

var remoteSchemes = []string{"libsql://", "http://", "https://", "ws://", "wss://"}

func DriverFor(dsn string) string {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(dsn, scheme) {
			return "libsql"
		}
	}
	return "sqlite3"
}

func (s *Storage) ConnectDb(dsn string) (*sql.DB, error) {
	driver := DriverFor(dsn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite3" {
		// an in-memory database lives as long as its connection
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func (s *Storage) InitResultsDb(db *sql.DB, meta map[string]any) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS parameters (
		batch TEXT,
		name TEXT,
		value,
		PRIMARY KEY (batch, name)
	)`)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	parameters := make([]any, 0)
	parameters = append(parameters, s.Batch, "time", time.Now().Format("2006-01-02 15:04:05"))
	for _, key := range keys {
		parameters = append(parameters, s.Batch, key, fmt.Sprintf("%v", meta[key]))
	}
	placeholders := strings.Join(slices.Repeat([]string{"(?, ?, ?)"}, len(parameters)/3), ", ")
	_, err = db.Exec(
		fmt.Sprintf("INSERT INTO parameters VALUES %v ON CONFLICT DO NOTHING", placeholders),
		parameters...,
	)
	if err != nil {
		return err
	}
	Logger.Infof("initialized results database for batch %v with meta %v", s.Batch, meta)
	return nil
}

func (s *Storage) Parameters(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query("SELECT name, value FROM parameters WHERE batch = ?", s.Batch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		results[name] = value
	}
	return results, rows.Err()
}

func TableName(group *perfctr.Group) string {
	var b strings.Builder
	b.WriteString("likwid_")
	for _, r := range strings.ToLower(group.Name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlType(t perfctr.ValueType) string {
	if t == perfctr.Int {
		return "INTEGER"
	}
	return "REAL"
}

type sqlColumn struct {
	name string
	decl string
}

func groupColumns(group *perfctr.Group) []sqlColumn {
	columns := []sqlColumn{
		{"batch", "TEXT"},
		{"run", "INTEGER"},
		{"run_command", "TEXT"},
		{perfctr.ColBenchmark, "TEXT"},
		{perfctr.ColProblemSize, "INTEGER"},
		{perfctr.ColThreads, "INTEGER"},
		{perfctr.ColBlocks, "INTEGER"},
		{perfctr.ColRuntime, "REAL"},
	}
	for _, col := range group.Columns {
		columns = append(columns, sqlColumn{col.Name, sqlType(col.Type)})
	}
	return columns
}

func (s *Storage) InitGroupTable(db *sql.DB, group *perfctr.Group) error {
	columns := groupColumns(group)
	decls := make([]string, len(columns))
	for i, col := range columns {
		decls[i] = quoteIdent(col.name) + " " + col.decl
	}
	_, err := db.Exec(fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %v (%v, PRIMARY KEY (batch, run))",
		quoteIdent(TableName(group)),
		strings.Join(decls, ", "),
	))
	return err
}

func (s *Storage) UpdateGroupDb(db *sql.DB, table *perfctr.Table) error {
	columns := groupColumns(table.Group)
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = quoteIdent(col.name)
	}
	query := fmt.Sprintf(
		"INSERT INTO %v (%v) VALUES (%v)",
		quoteIdent(TableName(table.Group)),
		strings.Join(names, ", "),
		strings.Join(slices.Repeat([]string{"?"}, len(columns)), ", "),
	)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for i, rec := range table.Records {
		args := []any{
			s.Batch,
			i,
			rec.Command,
			rec.Benchmark,
			rec.ProblemSize,
			rec.Threads,
			rec.Blocks.Any(),
			rec.Runtime.Any(),
		}
		for _, v := range rec.Values {
			args = append(args, v.Any())
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("run %v of %v: %w", i, table.Group.Name, err)
		}
	}
	return tx.Commit()
}
