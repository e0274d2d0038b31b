package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"api_catalog/api"
	"api_catalog/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) (*Client, *catalog.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	svc, err := catalog.NewService(catalog.NewLocalStorage(), catalog.WithDelay(catalog.NoDelay))
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(svc, logger))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithTimeout(5*time.Second), WithTransport(srv.Client().Transport))
	t.Cleanup(func() { _ = c.Close() })
	return c, svc
}

func TestClient_RoundTrip(t *testing.T) {
	c, svc := newTestServer(t)
	ctx := context.Background()

	products, summary, err := c.ListWithSummary(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(catalog.DefaultSeed()))
	assert.Equal(t, len(catalog.DefaultSeed()), summary.Quantity)

	created, err := c.Create(ctx, catalog.ProductInput{
		Name:       "Widget",
		Unit:       catalog.UnitEach,
		Cost:       1,
		SalePrice:  2,
		TaxBracket: catalog.TaxStandard,
		IsTaxable:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	price := 150.0
	updated, err := c.Update(ctx, created.ID, catalog.ProductPatch{SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.SalePrice)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)
	assert.Equal(t, updated.SalePrice, got.SalePrice)

	local, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, local.SalePrice)

	require.NoError(t, c.Reset(ctx))
	products, err = c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(catalog.DefaultSeed()))
}

func TestClient_NotFound(t *testing.T) {
	c, _ := newTestServer(t)

	price := 1.0
	_, err := c.Update(context.Background(), "does-not-exist", catalog.ProductPatch{SalePrice: &price})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	var nf *catalog.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "does-not-exist", nf.ID)

	_, err = c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestClient_Validation(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.Create(context.Background(), catalog.ProductInput{
		Name:       "Widget",
		Unit:       catalog.UnitEach,
		TaxBracket: "luxury",
	})
	require.Error(t, err)

	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tax_bracket", verr.Field)
	assert.ErrorIs(t, err, catalog.ErrInvalid)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	defer c.Close()

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, catalog.ErrNotFound)
	assert.Contains(t, err.Error(), "internal error")
}

func TestClient_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"product id already exists","product_id":"prod-9"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	defer c.Close()

	_, err := c.Create(context.Background(), catalog.ProductInput{Name: "X", Unit: catalog.UnitEach, TaxBracket: catalog.TaxExempt})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrConflict)

	var cerr *catalog.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "prod-9", cerr.ID)
}
