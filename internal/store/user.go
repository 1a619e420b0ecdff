package store

import (
	"context"
	"time"

	"proshop/internal/database"
	"proshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, is_admin, created_at, updated_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// CreateUser inserts u. u.PasswordHash must already be hashed.
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	u.Email = NormalizeEmail(u.Email)
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID uuid.UUID) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		NormalizeEmail(email),
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

// UpdateUser 更新 name / email / is_admin，不動 password_hash
func UpdateUser(ctx context.Context, db database.Querier, u *model.User) error {
	u.Email = NormalizeEmail(u.Email)
	row := db.QueryRow(ctx,
		`UPDATE users SET name = $1, email = $2, is_admin = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING updated_at`,
		u.Name,
		u.Email,
		u.IsAdmin,
		u.ID,
	)
	if err := row.Scan(&u.UpdatedAt); err != nil {
		return wrap("UpdateUser", err)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db database.Querier, userID uuid.UUID, passwordHash string) (time.Time, error) {
	var updatedAt time.Time
	row := db.QueryRow(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING updated_at`,
		passwordHash,
		userID,
	)
	if err := row.Scan(&updatedAt); err != nil {
		return time.Time{}, wrap("UpdateUserPassword", err)
	}
	return updatedAt, nil
}

func DeleteUser(ctx context.Context, db database.DB, userID uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return wrap("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteUser", pgx.ErrNoRows)
	}
	return nil
}
