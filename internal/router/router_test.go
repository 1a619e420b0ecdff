package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"proshop/internal/cache"
	"proshop/internal/database"
	"proshop/internal/model"
	"proshop/internal/service"
	"proshop/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, Deps{DB: &database.FakeDB{}, Tokens: service.NewTokenIssuer("s", time.Hour)})

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /health",
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/users",
		http.MethodPost + " /api/users/login",
		http.MethodPost + " /api/users/logout",
		http.MethodGet + " /api/users/profile",
		http.MethodPut + " /api/users/profile",
		http.MethodGet + " /api/users",
		http.MethodGet + " /api/users/:id",
		http.MethodPut + " /api/users/:id",
		http.MethodDelete + " /api/users/:id",
		http.MethodGet + " /api/products",
		http.MethodGet + " /api/products/:id",
		http.MethodPost + " /api/products",
		http.MethodPut + " /api/products/:id",
		http.MethodDelete + " /api/products/:id",
		http.MethodPost + " /api/orders",
		http.MethodGet + " /api/orders/mine",
		http.MethodGet + " /api/orders/:id",
		http.MethodPut + " /api/orders/:id/pay",
		http.MethodPut + " /api/orders/:id/deliver",
		http.MethodGet + " /api/orders",
	}
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

/* ---------- 端對端測試用的假資料庫 ---------- */

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// usersTable 只模擬 users 相關 SQL
type usersTable struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.User
}

func (t *usersTable) byEmail(email string) *model.User {
	for _, u := range t.rows {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func scanFull(u model.User) pgx.Row {
	return rowFunc(func(dest ...any) error {
		*dest[0].(*uuid.UUID) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.PasswordHash
		*dest[4].(*bool) = u.IsAdmin
		*dest[5].(*time.Time) = u.CreatedAt
		*dest[6].(*time.Time) = u.UpdatedAt
		return nil
	})
}

func errRow(err error) pgx.Row {
	return rowFunc(func(...any) error { return err })
}

func (t *usersTable) queryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	switch {
	case strings.HasPrefix(sql, "INSERT INTO users"):
		email := args[1].(string)
		if t.byEmail(email) != nil {
			return errRow(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
		}
		u := &model.User{
			ID:           uuid.New(),
			Name:         args[0].(string),
			Email:        email,
			PasswordHash: args[2].(string),
			IsAdmin:      args[3].(bool),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		t.rows[u.ID] = u
		return rowFunc(func(dest ...any) error {
			*dest[0].(*uuid.UUID) = u.ID
			*dest[1].(*time.Time) = now
			*dest[2].(*time.Time) = now
			return nil
		})
	case strings.Contains(sql, "FROM users WHERE email"):
		if u := t.byEmail(args[0].(string)); u != nil {
			return scanFull(*u)
		}
		return errRow(pgx.ErrNoRows)
	case strings.Contains(sql, "FROM users WHERE id"):
		if u, ok := t.rows[args[0].(uuid.UUID)]; ok {
			return scanFull(*u)
		}
		return errRow(pgx.ErrNoRows)
	}
	panic("unexpected query: " + sql)
}

// memCache 以 map 實作 cache.Cache
type memCache struct {
	mu   sync.Mutex
	data map[string]any
}

func (m *memCache) fake() *cache.FakeCache {
	return &cache.FakeCache{
		ExistsFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			m.mu.Lock()
			defer m.mu.Unlock()
			var n int64
			for _, k := range keys {
				if _, ok := m.data[k]; ok {
					n++
				}
			}
			return redis.NewIntResult(n, nil)
		},
		SetFn: func(_ context.Context, key string, val any, _ time.Duration) *redis.StatusCmd {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.data[key] = val
			return redis.NewStatusResult("OK", nil)
		},
	}
}

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

type authResp struct {
	ID      uuid.UUID `json:"id"`
	IsAdmin bool      `json:"is_admin"`
	Token   string    `json:"token"`
}

func TestRegisterLoginFlow(t *testing.T) {
	table := &usersTable{rows: map[uuid.UUID]*model.User{}}
	db := &database.FakeDB{QueryRowFn: table.queryRow}
	mem := &memCache{data: map[string]any{}}
	cch := mem.fake()

	pool := worker.NewPool(2, nil)
	defer pool.Stop()
	hasher := service.NewPooledHasher(service.NewPasswordHasher(bcrypt.MinCost), pool)

	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	Setup(e, Deps{
		DB:       db,
		Cache:    cch,
		Accounts: service.NewAccounts(db, hasher),
		Catalog:  service.NewCatalog(db),
		Orders:   service.NewOrders(db),
		Tokens:   service.NewTokenIssuer("e2e-secret", time.Hour),
		Denylist: cache.NewTokenDenylist(cch),
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	client := resty.New().SetBaseURL(srv.URL)

	// health
	resp, err := client.R().Get("/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Contains(t, resp.String(), `"status":"OK"`)

	// register
	var reg authResp
	resp, err = client.R().
		SetBody(map[string]any{"name": "A", "email": "a@x.com", "password": "secret"}).
		SetResult(&reg).
		Post("/api/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	require.False(t, reg.IsAdmin)
	require.NotEmpty(t, reg.Token)
	require.NotContains(t, resp.String(), "secret")

	stored := table.rows[reg.ID]
	require.NotEqual(t, "secret", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))

	// duplicate email, case-insensitive
	resp, err = client.R().
		SetBody(map[string]any{"name": "B", "email": "A@X.com", "password": "other"}).
		Post("/api/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode())
	require.Len(t, table.rows, 1)

	// login
	var login authResp
	resp, err = client.R().
		SetBody(map[string]any{"email": "a@x.com", "password": "secret"}).
		SetResult(&login).
		Post("/api/users/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Equal(t, reg.ID, login.ID)

	resp, err = client.R().
		SetBody(map[string]any{"email": "a@x.com", "password": "wrong"}).
		Post("/api/users/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// protected route
	resp, err = client.R().Get("/api/users/profile")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp, err = client.R().SetAuthToken(login.Token).Get("/api/users/profile")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Contains(t, resp.String(), "a@x.com")

	// admin route: 401 without credential, 403 as customer
	target := "/api/users/" + reg.ID.String()
	resp, err = client.R().Get(target)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp, err = client.R().SetAuthToken(login.Token).Get(target)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode())

	table.mu.Lock()
	table.rows[reg.ID].IsAdmin = true
	table.mu.Unlock()
	resp, err = client.R().SetAuthToken(login.Token).Get(target)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	// logout revokes the token
	resp, err = client.R().SetAuthToken(login.Token).Post("/api/users/logout")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().SetAuthToken(login.Token).Get("/api/users/profile")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// the registration token is a different jti and still works
	resp, err = client.R().SetAuthToken(reg.Token).Get("/api/users/profile")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
}
