package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"proshop/internal/database"
	"proshop/internal/logger"
	"proshop/internal/model"
	"proshop/internal/store"

	"github.com/google/uuid"
)

// store 函式以變數保存，測試時替換
var (
	storeCreateUser         = store.CreateUser
	storeGetUserByID        = store.GetUserByID
	storeGetUserByEmail     = store.GetUserByEmail
	storeListUsers          = store.ListUsers
	storeUpdateUser         = store.UpdateUser
	storeUpdateUserPassword = store.UpdateUserPassword
	storeDeleteUser         = store.DeleteUser
)

// NewUser 是建立帳號所需的欄位，Password 為明文
type NewUser struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// ProfileUpdate 空字串代表不變更
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
}

// UserUpdate 是管理員可以修改的欄位，nil / 空字串代表不變更
type UserUpdate struct {
	Name    string
	Email   string
	IsAdmin *bool
}

// Accounts 管理使用者紀錄；每個明文密碼只會經過一次雜湊
type Accounts struct {
	db     database.DB
	hasher Hasher
}

func NewAccounts(db database.DB, hasher Hasher) *Accounts {
	return &Accounts{db: db, hasher: hasher}
}

// Create 雜湊密碼後寫入；email 重複時回傳 store.ErrDuplicateEmail
func (a *Accounts) Create(ctx context.Context, nu NewUser) (*model.User, error) {
	name := strings.TrimSpace(nu.Name)
	if name == "" {
		return nil, fmt.Errorf("Create: %w", ErrInvalidName)
	}
	hash, err := a.hasher.Hash(ctx, nu.Password)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	u, err := storeCreateUser(ctx, a.db, &model.User{
		Name:         name,
		Email:        nu.Email,
		PasswordHash: hash,
		IsAdmin:      nu.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Msg("user registered")
	return u, nil
}

func (a *Accounts) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return storeGetUserByEmail(ctx, a.db, email)
}

func (a *Accounts) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return storeGetUserByID(ctx, a.db, id)
}

func (a *Accounts) List(ctx context.Context) ([]model.User, error) {
	return storeListUsers(ctx, a.db)
}

// Authenticate 找不到 email 與密碼錯誤都回傳 ErrInvalidCredentials
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := storeGetUserByEmail(ctx, a.db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	ok, err := a.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdatePassword 只有在新密碼與目前不同時才重新雜湊並寫入，回傳是否有變更。
// 空字串視為未修改。
func (a *Accounts) UpdatePassword(ctx context.Context, u *model.User, plaintext string) (bool, error) {
	hash, changed, err := a.rehash(ctx, u, plaintext)
	if err != nil || !changed {
		return false, err
	}
	updatedAt, err := storeUpdateUserPassword(ctx, a.db, u.ID, hash)
	if err != nil {
		return false, fmt.Errorf("UpdatePassword: %w", err)
	}
	u.PasswordHash = hash
	u.UpdatedAt = updatedAt
	logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Msg("password changed")
	return true, nil
}

// rehash 回傳新密碼的雜湊；空字串或與目前相同時 changed 為 false
func (a *Accounts) rehash(ctx context.Context, u *model.User, plaintext string) (hash string, changed bool, err error) {
	if plaintext == "" {
		return "", false, nil
	}
	same, err := a.hasher.Verify(ctx, plaintext, u.PasswordHash)
	switch {
	case err == nil && same:
		return "", false, nil
	case err != nil && !errors.Is(err, ErrDataIntegrity):
		return "", false, fmt.Errorf("UpdatePassword: %w", err)
	}
	// 損壞的雜湊直接以新密碼覆寫

	hash, err = a.hasher.Hash(ctx, plaintext)
	if err != nil {
		return "", false, fmt.Errorf("UpdatePassword: %w", err)
	}
	return hash, true, nil
}

// Save 寫回 name / email / is_admin，不會重新雜湊密碼
func (a *Accounts) Save(ctx context.Context, u *model.User) error {
	if err := storeUpdateUser(ctx, a.db, u); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// UpdateProfile 使用者修改自己的資料。密碼先雜湊，兩筆寫入在同一個
// transaction；失敗時 u 維持原值
func (a *Accounts) UpdateProfile(ctx context.Context, u *model.User, upd ProfileUpdate) (*model.User, error) {
	hash, changed, err := a.rehash(ctx, u, upd.Password)
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}

	next := *u
	if name := strings.TrimSpace(upd.Name); name != "" {
		next.Name = name
	}
	if upd.Email != "" {
		next.Email = upd.Email
	}

	err = database.WithTx(ctx, a.db, func(q database.Querier) error {
		if err := storeUpdateUser(ctx, q, &next); err != nil {
			return err
		}
		if !changed {
			return nil
		}
		updatedAt, err := storeUpdateUserPassword(ctx, q, next.ID, hash)
		if err != nil {
			return err
		}
		next.PasswordHash = hash
		next.UpdatedAt = updatedAt
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}
	*u = next
	if changed {
		logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Msg("password changed")
	}
	return u, nil
}

// UpdateUser 管理員修改指定使用者，可升降管理員權限
func (a *Accounts) UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error) {
	u, err := storeGetUserByID(ctx, a.db, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	if name := strings.TrimSpace(upd.Name); name != "" {
		u.Name = name
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.IsAdmin != nil {
		u.IsAdmin = *upd.IsAdmin
	}
	if err := a.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete 移除使用者；管理員帳號不可刪除
func (a *Accounts) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := storeGetUserByID(ctx, a.db, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if u.IsAdmin {
		return ErrAdminDelete
	}
	if err := storeDeleteUser(ctx, a.db, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
