package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("pgxmock: %v", err)
		}
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM movies").WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err = WithTx(ctx, mock, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, "DELETE FROM movies WHERE id = $1", int64(1))
			return err
		})
		if err != nil {
			t.Fatalf("WithTx: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("pgxmock: %v", err)
		}
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		errBoom := errors.New("boom")
		err = WithTx(ctx, mock, func(pgx.Tx) error { return errBoom })
		if !errors.Is(err, errBoom) {
			t.Fatalf("expected errBoom, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("begin fails", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("pgxmock: %v", err)
		}
		defer mock.Close()

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		called := false
		err = WithTx(ctx, mock, func(pgx.Tx) error {
			called = true
			return nil
		})
		if err == nil || called {
			t.Fatalf("expected begin error without running fn, got err=%v called=%v", err, called)
		}
	})
}
