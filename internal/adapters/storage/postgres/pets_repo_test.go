package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-tracker/internal/domain/pets"
)

func ptr[T any](v T) *T { return &v }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestPetsRepo_EnsureSchema(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(petsSchema).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, NewPetsRepo(mock).EnsureSchema(context.Background()))
}

func TestPetsRepo_InsertReturnsGeneratedID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO pets (name, breed, gender, weight) VALUES ($1, $2, $3, $4) RETURNING id").
		WithArgs("Toto", "Terrier", int64(1), int64(7)).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := NewPetsRepo(mock).Insert(context.Background(), pets.Values{
		Name:   ptr("Toto"),
		Breed:  ptr("Terrier"),
		Gender: ptr(pets.GenderMale),
		Weight: ptr(int64(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestPetsRepo_InsertError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO pets (name, gender) VALUES ($1, $2) RETURNING id").
		WithArgs("Rex", int64(1)).
		WillReturnError(errors.New("connection reset"))

	_, err := NewPetsRepo(mock).Insert(context.Background(), pets.Values{Name: ptr("Rex"), Gender: ptr(pets.GenderMale)})
	assert.Error(t, err)
}

func TestPetsRepo_QueryScansRows(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT id, name, breed, gender, weight FROM pets WHERE id = $1 ORDER BY name ASC").
		WithArgs(int64(3)).
		WillReturnRows(mock.NewRows([]string{"id", "name", "breed", "gender", "weight"}).
			AddRow(int64(3), "Toto", "Terrier", int64(1), int64(7)))

	repo := NewPetsRepo(mock)
	var got []pets.Pet
	for p, err := range repo.Query(context.Background(), pets.Query{
		Selection: pets.Selection{Where: "id = ?", Args: []any{int64(3)}},
		SortOrder: "name",
	}) {
		require.NoError(t, err)
		got = append(got, p)
	}

	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, "Toto", got[0].Name)
	assert.Equal(t, ptr("Terrier"), got[0].Breed)
	assert.Equal(t, pets.GenderMale, got[0].Gender)
	require.NotNil(t, got[0].Weight)
	assert.Equal(t, int64(7), *got[0].Weight)
}

func TestPetsRepo_UpdateRebindsSetAndWhere(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE pets SET name = $1, weight = $2 WHERE id = $3").
		WithArgs("Milo", int64(9), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := NewPetsRepo(mock).Update(context.Background(),
		pets.Values{Name: ptr("Milo"), Weight: ptr(int64(9))},
		pets.Selection{Where: "id = ?", Args: []any{int64(5)}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPetsRepo_UpdateFailureReportsMinusOne(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE pets SET breed = $1").
		WithArgs("Lab").
		WillReturnError(errors.New("deadlock detected"))

	n, err := NewPetsRepo(mock).Update(context.Background(), pets.Values{Breed: ptr("Lab")}, pets.Selection{})
	assert.Error(t, err)
	assert.Equal(t, int64(-1), n)
}

func TestPetsRepo_DeleteAll(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM pets").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := NewPetsRepo(mock).Delete(context.Background(), pets.Selection{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestPoolConfigDefaults(t *testing.T) {
	cfg, err := poolConfig("postgres://postgres@localhost:5432/pets?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, int32(1), cfg.MinConns)

	_, err = poolConfig("::not a dsn::")
	assert.Error(t, err)
}
