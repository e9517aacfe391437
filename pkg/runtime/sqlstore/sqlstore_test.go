package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/ontogen/pkg/runtime"
)

const (
	dog      = runtime.Class("http://example.org/zoo#Dog")
	hasOwner = runtime.ObjectProperty("http://example.org/zoo#hasOwner")
	age      = runtime.DataProperty("http://example.org/zoo#age")
)

func setupSQLite(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A :memory: database lives on one connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := New(db, SQLite)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupSQLite(t)

	require.NoError(t, s.AssertClass(ctx, "rex", dog))
	require.NoError(t, s.AssertClass(ctx, "fido", dog))
	require.NoError(t, s.AssertClass(ctx, "rex", dog))

	individuals, err := s.Individuals(ctx, dog)
	require.NoError(t, err)
	assert.Equal(t, []string{"rex", "fido"}, individuals)

	require.NoError(t, s.AddObjectValue(ctx, "rex", hasOwner, "bob"))
	require.NoError(t, s.AddObjectValue(ctx, "rex", hasOwner, "alice"))
	require.NoError(t, s.AddObjectValue(ctx, "rex", hasOwner, "bob"))
	owners, err := s.ObjectValues(ctx, "rex", hasOwner)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "alice"}, owners)

	require.NoError(t, s.RemoveObjectValue(ctx, "rex", hasOwner, "bob"))
	owners, err = s.ObjectValues(ctx, "rex", hasOwner)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, owners)

	three := runtime.Literal{Lexical: "3", Datatype: runtime.XSDInteger}
	require.NoError(t, s.AddDataValue(ctx, "rex", age, three))
	require.NoError(t, s.AddDataValue(ctx, "rex", age, three))
	values, err := s.DataValues(ctx, "rex", age)
	require.NoError(t, err)
	assert.Equal(t, []runtime.Literal{three}, values)

	require.NoError(t, s.RemoveDataValue(ctx, "rex", age, three))
	values, err = s.DataValues(ctx, "rex", age)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSQLiteDeleteIndividual(t *testing.T) {
	ctx := context.Background()
	s := setupSQLite(t)

	require.NoError(t, s.AssertClass(ctx, "rex", dog))
	require.NoError(t, s.AddObjectValue(ctx, "rex", hasOwner, "alice"))
	require.NoError(t, s.AddObjectValue(ctx, "fido", hasOwner, "rex"))
	require.NoError(t, s.AddDataValue(ctx, "rex", age, runtime.Encode(3)))

	require.NoError(t, s.DeleteIndividual(ctx, "rex"))

	individuals, err := s.Individuals(ctx, dog)
	require.NoError(t, err)
	assert.Empty(t, individuals)

	refs, err := s.ObjectValues(ctx, "fido", hasOwner)
	require.NoError(t, err)
	assert.Empty(t, refs)

	values, err := s.DataValues(ctx, "rex", age)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestGeneratedIndividualOnSQLite(t *testing.T) {
	ctx := context.Background()
	s := setupSQLite(t)

	rex := runtime.NewBaseIndividual(s, "rex")
	require.NoError(t, rex.ReplaceLiterals(ctx, age, []runtime.Literal{runtime.Encode(4)}))
	require.NoError(t, rex.ReplaceLiterals(ctx, age, []runtime.Literal{runtime.Encode(5)}))

	values, err := rex.Literals(ctx, age)
	require.NoError(t, err)
	require.Len(t, values, 1)
	got, err := runtime.Decode[int](values[0])
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestPostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db, Postgres)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO ontogen_types (individual, class) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs("rex", string(dog)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT object FROM ontogen_objects WHERE subject = $1 AND property = $2 ORDER BY id")).
		WithArgs("rex", string(hasOwner)).
		WillReturnRows(sqlmock.NewRows([]string{"object"}).AddRow("alice").AddRow("bob"))

	ctx := context.Background()
	require.NoError(t, s.AssertClass(ctx, "rex", dog))
	owners, err := s.ObjectValues(ctx, "rex", hasOwner)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, owners)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT individual FROM ontogen_types").WillReturnError(boom)

	_, err = New(db, SQLite).Individuals(context.Background(), dog)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listing")
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ontogen_types").WithArgs("rex").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM ontogen_objects").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err = New(db, SQLite).DeleteIndividual(context.Background(), "rex")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}
