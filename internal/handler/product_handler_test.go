package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/utils"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

type fakeProductStore struct {
	products map[int64]*models.Product
}

func (s *fakeProductStore) Create(p *models.Product) error {
	p.ID = int64(len(s.products) + 1)
	s.products[p.ID] = p
	return nil
}

func (s *fakeProductStore) GetByID(id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (s *fakeProductStore) GetByName(name string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeProductStore) GetAll() ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProductStore) GetByCategoryID(categoryID int64) ([]models.Product, error) {
	var out []models.Product
	for id := int64(1); id <= int64(len(s.products)); id++ {
		if p, ok := s.products[id]; ok && p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Update(p *models.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *fakeProductStore) Delete(id int64) error {
	if _, ok := s.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.products, id)
	return nil
}

type fakeCategoryStore struct{}

func (fakeCategoryStore) GetByID(id int64) (*models.Category, error) {
	if id == 1 {
		return &models.Category{ID: 1, Name: "Electronics"}, nil
	}
	return nil, sql.ErrNoRows
}

func (fakeCategoryStore) GetByName(name string) (*models.Category, error) {
	if name == "Electronics" {
		return &models.Category{ID: 1, Name: "Electronics"}, nil
	}
	return nil, sql.ErrNoRows
}

type fakePriceFetcher struct{}

func (fakePriceFetcher) FetchPrice(ctx context.Context, productID int64) (lookup.PriceResult, error) {
	return lookup.PriceResult{Status: lookup.StatusNotFound}, nil
}

type fakeInventoryFetcher struct{}

func (fakeInventoryFetcher) FetchInventory(ctx context.Context, productID int64) (lookup.InventoryResult, error) {
	return lookup.InventoryResult{Status: lookup.StatusFound, Quantity: 2}, nil
}

func newTestRouter(products map[int64]*models.Product) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewProductService(
		&fakeProductStore{products: products},
		fakeCategoryStore{},
		fakePriceFetcher{},
		fakeInventoryFetcher{},
		nil,
		4,
	)
	h := NewProductHandler(svc)

	router := gin.New()
	router.POST("/com/api/products", h.CreateProduct)
	router.GET("/com/api/products/getByProductId", h.GetProductByID)
	router.GET("/com/api/products/get_products_by_category", h.GetProductsByCategory)
	return router
}

func decodeEnvelope(t *testing.T, body string) utils.Response {
	t.Helper()
	var env utils.Response
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestGetProductByID_ReturnsEnvelope(t *testing.T) {
	router := newTestRouter(map[int64]*models.Product{
		1: {ID: 1, Name: "Laptop", CategoryID: 1},
	})

	req := httptest.NewRequest(http.MethodGet, "/com/api/products/getByProductId?id=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.HTTPStatus)
	assert.NotEmpty(t, env.TraceID)

	view, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Laptop", view["name"])
	assert.Equal(t, "IN_STOCK", view["quantityStatus"])
	assert.Nil(t, view["price"])
}

func TestGetProductByID_BadQuery(t *testing.T) {
	router := newTestRouter(nil)

	for _, query := range []string{"", "id=abc", "id=-3"} {
		req := httptest.NewRequest(http.MethodGet, "/com/api/products/getByProductId?"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
		env := decodeEnvelope(t, rec.Body.String())
		assert.False(t, env.Success)
	}
}

func TestGetProductByID_NotFound(t *testing.T) {
	router := newTestRouter(map[int64]*models.Product{})

	req := httptest.NewRequest(http.MethodGet, "/com/api/products/getByProductId?id=9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductsByCategory_EmptyResult(t *testing.T) {
	router := newTestRouter(map[int64]*models.Product{})

	req := httptest.NewRequest(http.MethodGet, "/com/api/products/get_products_by_category?categoryName=Electronics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "No available products found for category 'Electronics'", env.Message)
}

func TestGetProductsByCategory_UnknownCategory(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/com/api/products/get_products_by_category?categoryName=Toys", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProduct_MissingFields(t *testing.T) {
	router := newTestRouter(map[int64]*models.Product{})

	req := httptest.NewRequest(http.MethodPost, "/com/api/products", strings.NewReader(`{"brand":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_Success(t *testing.T) {
	router := newTestRouter(map[int64]*models.Product{})

	body := `{"name":"Laptop","brand":"Acme","description":"14 inch","categoryId":1}`
	req := httptest.NewRequest(http.MethodPost, "/com/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "Product created successfully", env.Message)
}
