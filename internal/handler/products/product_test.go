package products

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proshop/internal/middleware"
	"proshop/internal/model"
	"proshop/internal/service"
	"proshop/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

type fakeCatalog struct {
	ListFn   func(ctx context.Context, keyword string, page int) (*service.ProductPage, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*model.Product, error)
	CreateFn func(ctx context.Context, owner uuid.UUID, in service.ProductInput) (*model.Product, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, in service.ProductInput) (*model.Product, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeCatalog) List(ctx context.Context, keyword string, page int) (*service.ProductPage, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, keyword, page)
	}
	panic("unexpected List")
}

func (f *fakeCatalog) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, id)
	}
	panic("unexpected Get")
}

func (f *fakeCatalog) Create(ctx context.Context, owner uuid.UUID, in service.ProductInput) (*model.Product, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, owner, in)
	}
	panic("unexpected Create")
}

func (f *fakeCatalog) Update(ctx context.Context, id uuid.UUID, in service.ProductInput) (*model.Product, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, in)
	}
	panic("unexpected Update")
}

func (f *fakeCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	panic("unexpected Delete")
}

func newCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetPath("/products/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestListProductsHandler(t *testing.T) {
	e := echo.New()

	t.Run("bad page", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodGet, "/products?page=x", "")
		require.NoError(t, ListProductsHandler(&fakeCatalog{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodGet, "/products?keyword=air&page=2", "")
		catalog := &fakeCatalog{ListFn: func(_ context.Context, kw string, page int) (*service.ProductPage, error) {
			require.Equal(t, "air", kw)
			require.Equal(t, 2, page)
			return &service.ProductPage{Products: []model.Product{{Name: "Airpods"}}, Page: 2, Pages: 3}, nil
		}}
		require.NoError(t, ListProductsHandler(catalog)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"pages":3`)
		require.Contains(t, rec.Body.String(), "Airpods")
	})

	t.Run("store error", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodGet, "/products", "")
		catalog := &fakeCatalog{ListFn: func(context.Context, string, int) (*service.ProductPage, error) {
			return nil, errors.New("db")
		}}
		require.NoError(t, ListProductsHandler(catalog)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	e := echo.New()

	ctx, _ := newCtx(e, http.MethodGet, "/", "")
	err := GetProductHandler(&fakeCatalog{})(withID(ctx, "nope"))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)

	ctx, rec := newCtx(e, http.MethodGet, "/", "")
	catalog := &fakeCatalog{GetFn: func(context.Context, uuid.UUID) (*model.Product, error) { return nil, store.ErrNotFound }}
	require.NoError(t, GetProductHandler(catalog)(withID(ctx, uuid.NewString())))
	require.Equal(t, http.StatusNotFound, rec.Code)

	id := uuid.New()
	ctx, rec = newCtx(e, http.MethodGet, "/", "")
	catalog.GetFn = func(context.Context, uuid.UUID) (*model.Product, error) { return &model.Product{ID: id}, nil }
	require.NoError(t, GetProductHandler(catalog)(withID(ctx, id.String())))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), id.String())
}

func TestCreateProductHandler(t *testing.T) {
	e := echo.New()
	admin := &model.User{ID: uuid.New(), IsAdmin: true}

	t.Run("empty body creates sample", func(t *testing.T) {
		e.Validator = &stubValidator{err: errors.New("should not validate")}
		ctx, rec := newCtx(e, http.MethodPost, "/products", "")
		ctx.Set(middleware.ContextUserKey, admin)
		catalog := &fakeCatalog{CreateFn: func(_ context.Context, owner uuid.UUID, in service.ProductInput) (*model.Product, error) {
			require.Equal(t, admin.ID, owner)
			require.Equal(t, service.SampleProduct, in)
			return &model.Product{Name: in.Name, UserID: owner}, nil
		}}
		require.NoError(t, CreateProductHandler(catalog)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "Sample name")
	})

	t.Run("validation error", func(t *testing.T) {
		e.Validator = &stubValidator{err: errors.New("price gte")}
		ctx, rec := newCtx(e, http.MethodPost, "/products", `{"name":"x","price":-1}`)
		ctx.Set(middleware.ContextUserKey, admin)
		require.NoError(t, CreateProductHandler(&fakeCatalog{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("with body", func(t *testing.T) {
		e.Validator = &stubValidator{}
		ctx, rec := newCtx(e, http.MethodPost, "/products", `{"name":"Camera","price":10,"count_in_stock":2}`)
		ctx.Set(middleware.ContextUserKey, admin)
		catalog := &fakeCatalog{CreateFn: func(_ context.Context, _ uuid.UUID, in service.ProductInput) (*model.Product, error) {
			require.Equal(t, "Camera", in.Name)
			require.Equal(t, 10.0, in.Price)
			require.Equal(t, 2, in.CountInStock)
			return &model.Product{Name: in.Name}, nil
		}}
		require.NoError(t, CreateProductHandler(catalog)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestUpdateAndDeleteProductHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}
	id := uuid.New()

	ctx, rec := newCtx(e, http.MethodPut, "/", `{"name":"New"}`)
	catalog := &fakeCatalog{UpdateFn: func(_ context.Context, got uuid.UUID, in service.ProductInput) (*model.Product, error) {
		require.Equal(t, id, got)
		return &model.Product{ID: id, Name: in.Name}, nil
	}}
	require.NoError(t, UpdateProductHandler(catalog)(withID(ctx, id.String())))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newCtx(e, http.MethodPut, "/", `{"name":"New"}`)
	catalog.UpdateFn = func(context.Context, uuid.UUID, service.ProductInput) (*model.Product, error) {
		return nil, store.ErrNotFound
	}
	require.NoError(t, UpdateProductHandler(catalog)(withID(ctx, id.String())))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, rec = newCtx(e, http.MethodDelete, "/", "")
	catalog.DeleteFn = func(context.Context, uuid.UUID) error { return nil }
	require.NoError(t, DeleteProductHandler(catalog)(withID(ctx, id.String())))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "product removed")
}
