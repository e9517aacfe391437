// Package sqlstore is a runtime.Store over database/sql. It works with
// sqlite3 and PostgreSQL; register the driver you need with a blank import.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/conduit-lang/ontogen/pkg/runtime"
)

// Dialect captures the SQL differences between supported databases.
type Dialect struct {
	Name string
	// Serial is the column definition of an auto-incrementing key.
	Serial string
	// Numbered reports whether placeholders are $1, $2, ... instead of ?.
	Numbered bool
}

var (
	SQLite   = Dialect{Name: "sqlite3", Serial: "INTEGER PRIMARY KEY AUTOINCREMENT"}
	Postgres = Dialect{Name: "postgres", Serial: "BIGSERIAL PRIMARY KEY", Numbered: true}
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite3", "sqlite":
		return SQLite, nil
	case "postgres", "pgx":
		return Postgres, nil
	}
	return Dialect{}, errors.Newf("unsupported SQL driver %q", driver)
}

// rebind rewrites ? placeholders for numbered dialects.
func (d Dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Store persists individuals in three tables. Row ids keep values in
// insertion order.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ runtime.Store = (*Store)(nil)

// New wraps an open database.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open opens and pings a database and creates the tables.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to %s database", driver)
	}
	s := New(db, dialect)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the store's tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ontogen_types (
	id %s,
	individual TEXT NOT NULL,
	class TEXT NOT NULL,
	UNIQUE (individual, class)
)`, s.dialect.Serial),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ontogen_objects (
	id %s,
	subject TEXT NOT NULL,
	property TEXT NOT NULL,
	object TEXT NOT NULL,
	UNIQUE (subject, property, object)
)`, s.dialect.Serial),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ontogen_data (
	id %s,
	subject TEXT NOT NULL,
	property TEXT NOT NULL,
	lexical TEXT NOT NULL,
	datatype TEXT NOT NULL,
	UNIQUE (subject, property, lexical, datatype)
)`, s.dialect.Serial),
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "creating tables")
		}
	}
	return nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(query), args...)
	return err
}

func (s *Store) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) AssertClass(ctx context.Context, individual string, class runtime.Class) error {
	err := s.exec(ctx, "INSERT INTO ontogen_types (individual, class) VALUES (?, ?) ON CONFLICT DO NOTHING",
		individual, string(class))
	return errors.Wrapf(err, "asserting %s as %s", individual, class)
}

func (s *Store) Individuals(ctx context.Context, class runtime.Class) ([]string, error) {
	out, err := s.strings(ctx, "SELECT individual FROM ontogen_types WHERE class = ? ORDER BY id", string(class))
	return out, errors.Wrapf(err, "listing %s individuals", class)
}

func (s *Store) ObjectValues(ctx context.Context, subject string, property runtime.ObjectProperty) ([]string, error) {
	out, err := s.strings(ctx, "SELECT object FROM ontogen_objects WHERE subject = ? AND property = ? ORDER BY id",
		subject, string(property))
	return out, errors.Wrapf(err, "reading %s of %s", property, subject)
}

func (s *Store) AddObjectValue(ctx context.Context, subject string, property runtime.ObjectProperty, object string) error {
	err := s.exec(ctx, "INSERT INTO ontogen_objects (subject, property, object) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		subject, string(property), object)
	return errors.Wrapf(err, "adding %s to %s of %s", object, property, subject)
}

func (s *Store) RemoveObjectValue(ctx context.Context, subject string, property runtime.ObjectProperty, object string) error {
	err := s.exec(ctx, "DELETE FROM ontogen_objects WHERE subject = ? AND property = ? AND object = ?",
		subject, string(property), object)
	return errors.Wrapf(err, "removing %s from %s of %s", object, property, subject)
}

func (s *Store) DataValues(ctx context.Context, subject string, property runtime.DataProperty) ([]runtime.Literal, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.rebind("SELECT lexical, datatype FROM ontogen_data WHERE subject = ? AND property = ? ORDER BY id"),
		subject, string(property))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s of %s", property, subject)
	}
	defer rows.Close()

	var out []runtime.Literal
	for rows.Next() {
		var l runtime.Literal
		if err := rows.Scan(&l.Lexical, &l.Datatype); err != nil {
			return nil, errors.Wrapf(err, "reading %s of %s", property, subject)
		}
		out = append(out, l)
	}
	return out, errors.Wrapf(rows.Err(), "reading %s of %s", property, subject)
}

func (s *Store) AddDataValue(ctx context.Context, subject string, property runtime.DataProperty, value runtime.Literal) error {
	err := s.exec(ctx, "INSERT INTO ontogen_data (subject, property, lexical, datatype) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING",
		subject, string(property), value.Lexical, value.Datatype)
	return errors.Wrapf(err, "adding %q to %s of %s", value.Lexical, property, subject)
}

func (s *Store) RemoveDataValue(ctx context.Context, subject string, property runtime.DataProperty, value runtime.Literal) error {
	err := s.exec(ctx, "DELETE FROM ontogen_data WHERE subject = ? AND property = ? AND lexical = ? AND datatype = ?",
		subject, string(property), value.Lexical, value.Datatype)
	return errors.Wrapf(err, "removing %q from %s of %s", value.Lexical, property, subject)
}

// DeleteIndividual removes iri and every object value pointing at it in
// one transaction.
func (s *Store) DeleteIndividual(ctx context.Context, iri string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	statements := []struct {
		query string
		args  []any
	}{
		{"DELETE FROM ontogen_types WHERE individual = ?", []any{iri}},
		{"DELETE FROM ontogen_objects WHERE subject = ? OR object = ?", []any{iri, iri}},
		{"DELETE FROM ontogen_data WHERE subject = ?", []any{iri}},
	}
	for _, st := range statements {
		if _, err := tx.ExecContext(ctx, s.dialect.rebind(st.query), st.args...); err != nil {
			return errors.Wrapf(err, "deleting %s", iri)
		}
	}
	return errors.Wrapf(tx.Commit(), "deleting %s", iri)
}
