package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"proshop/internal/database"
	"proshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func userVals(u model.User) []any {
	return []any{u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt}
}

func TestUserStore(t *testing.T) {
	now := time.Now().UTC()
	sample := model.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	dupErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}

	t.Run("CreateUser normalizes email", func(t *testing.T) {
		var gotEmail any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotEmail = args[1]
				return fakeRow{vals: []any{sample.ID, now, now}}
			},
		}
		u, err := CreateUser(context.Background(), db, &model.User{Name: "Alice", Email: "  Alice@Example.COM ", PasswordHash: "h"})
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", gotEmail)
		require.Equal(t, sample.ID, u.ID)
		require.Equal(t, now, u.UpdatedAt)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return fakeRow{err: dupErr} },
		}
		_, err := CreateUser(context.Background(), db, &model.User{Email: "a@x.com"})
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("CreateUser other unique violation", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return fakeRow{err: &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "other"}}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{Email: "a@x.com"})
		require.ErrorIs(t, err, ErrConflict)
		require.NotErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("GetUserByID", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return fakeRow{vals: userVals(sample)} },
		}
		u, err := GetUserByID(context.Background(), db, sample.ID)
		require.NoError(t, err)
		require.Equal(t, sample, *u)
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return fakeRow{err: pgx.ErrNoRows} },
		}
		u, err := GetUserByID(context.Background(), db, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	t.Run("GetUserByEmail normalizes", func(t *testing.T) {
		var got any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				got = args[0]
				return fakeRow{vals: userVals(sample)}
			},
		}
		_, err := GetUserByEmail(context.Background(), db, "ALICE@example.com")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got)
	})

	t.Run("ListUsers", func(t *testing.T) {
		rows := &fakeRows{data: [][]any{userVals(sample), userVals(sample)}}
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return rows, nil },
		}
		users, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, users, 2)
	})

	t.Run("ListUsers errors", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("down") },
		}
		_, err := ListUsers(context.Background(), db)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{data: [][]any{userVals(sample)}, scanErr: errors.New("scan")}, nil
		}
		_, err = ListUsers(context.Background(), db)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{err: errors.New("iter")}, nil
		}
		_, err = ListUsers(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("UpdateUser does not touch password", func(t *testing.T) {
		var gotSQL string
		later := now.Add(time.Minute)
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				gotSQL = sql
				return fakeRow{vals: []any{later}}
			},
		}
		u := sample
		require.NoError(t, UpdateUser(context.Background(), db, &u))
		require.NotContains(t, gotSQL, "password_hash")
		require.Equal(t, later, u.UpdatedAt)
	})

	t.Run("UpdateUser duplicate and missing", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return fakeRow{err: dupErr} },
		}
		u := sample
		require.ErrorIs(t, UpdateUser(context.Background(), db, &u), ErrDuplicateEmail)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return fakeRow{err: pgx.ErrNoRows} }
		require.ErrorIs(t, UpdateUser(context.Background(), db, &u), ErrNotFound)
	})

	t.Run("UpdateUserPassword", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return fakeRow{vals: []any{now}} },
		}
		at, err := UpdateUserPassword(context.Background(), db, sample.ID, "newHash")
		require.NoError(t, err)
		require.Equal(t, now, at)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return fakeRow{err: pgx.ErrNoRows} }
		_, err = UpdateUserPassword(context.Background(), db, sample.ID, "newHash")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeleteUser(context.Background(), db, sample.ID))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		}
		require.ErrorIs(t, DeleteUser(context.Background(), db, sample.ID), ErrNotFound)

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("delete failed")
		}
		require.Error(t, DeleteUser(context.Background(), db, sample.ID))
	})
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@x.com", NormalizeEmail(" A@X.com\t"))
}
