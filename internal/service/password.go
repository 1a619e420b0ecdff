// File: internal/service/password.go
package service

import (
	"context"
	"errors"
	"fmt"

	"proshop/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost 與原本的 bcrypt salt rounds 相同
const DefaultCost = 10

// MaxPasswordBytes 是 bcrypt 可接受的最長明文
const MaxPasswordBytes = 72

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// Hasher 把明文密碼轉成不可逆的雜湊，並驗證明文是否相符
type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify 不相符時回傳 (false, nil)；雜湊格式錯誤回傳 ErrDataIntegrity
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// PasswordHasher 使用 bcrypt，每次 Hash 都產生新的 salt
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cost 超出 bcrypt 範圍時改用 DefaultCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Cost() int { return h.cost }

func (h *PasswordHasher) Hash(_ context.Context, plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", fmt.Errorf("Hash: %w", ErrPasswordTooLong)
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("Hash: %w", ErrPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("Hash: %w", err)
	}
	return string(hashBytes), nil
}

func (h *PasswordHasher) Verify(_ context.Context, plaintext, hash string) (bool, error) {
	err := bcryptCompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// 格式錯誤、版本不符、雜湊過短
		return false, fmt.Errorf("Verify: %w: %v", ErrDataIntegrity, err)
	}
}

// PooledHasher 把 bcrypt 運算交給 worker pool，限制同時進行的雜湊數量
type PooledHasher struct {
	next Hasher
	pool worker.Pool
}

func NewPooledHasher(next Hasher, pool worker.Pool) *PooledHasher {
	return &PooledHasher{next: next, pool: pool}
}

type hashResult struct {
	hash string
	ok   bool
	err  error
}

func (h *PooledHasher) do(ctx context.Context, fn func() hashResult) (hashResult, error) {
	// buffered: 呼叫端放棄時 worker 不會卡住
	out := make(chan hashResult, 1)
	if err := h.pool.Submit(ctx, func() { out <- fn() }); err != nil {
		return hashResult{}, err
	}
	select {
	case r := <-out:
		return r, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

func (h *PooledHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	r, err := h.do(ctx, func() hashResult {
		s, err := h.next.Hash(ctx, plaintext)
		return hashResult{hash: s, err: err}
	})
	if err != nil {
		return "", err
	}
	return r.hash, r.err
}

func (h *PooledHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	r, err := h.do(ctx, func() hashResult {
		ok, err := h.next.Verify(ctx, plaintext, hash)
		return hashResult{ok: ok, err: err}
	})
	if err != nil {
		return false, err
	}
	return r.ok, r.err
}
