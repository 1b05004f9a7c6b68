package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestPostgresSlotsGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT value FROM storage_slots WHERE key=\$1`).
			WithArgs(CartKey).
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`[]`))

		v, found, err := NewPostgresSlots(mock).Get(ctx, CartKey)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, `[]`, v)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT value FROM storage_slots`).
			WithArgs(LastOrderKey).
			WillReturnError(pgx.ErrNoRows)

		_, found, err := NewPostgresSlots(mock).Get(ctx, LastOrderKey)
		require.NoError(t, err)
		require.False(t, found)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT value FROM storage_slots`).
			WithArgs(CartKey).
			WillReturnError(errors.New("connection reset"))

		_, _, err = NewPostgresSlots(mock).Get(ctx, CartKey)
		require.Error(t, err)
	})
}

func TestPostgresSlotsPut(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO storage_slots`).
		WithArgs(CartKey, `[{"id":1}]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewPostgresSlots(mock).Put(context.Background(), CartKey, `[{"id":1}]`))
	require.NoError(t, mock.ExpectationsWereMet())
}
