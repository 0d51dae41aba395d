package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_CatalogLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "admin@shop.test", "Password123!", true)
	s.seedUser(t, "ann@shop.test", "Password123!", false)
	admin := s.login(t, "admin@shop.test", "Password123!")
	customer := s.login(t, "ann@shop.test", "Password123!")

	body := gin.H{"name": "Linen Shirt", "category": "Tops", "price": 4500, "stock": 12, "minStock": 3, "isFeatured": true}

	rec := s.do(t, http.MethodPost, "/api/admin/products", body, customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/products", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode(t, rec)["product"].(map[string]interface{})
	id := product["id"].(string)
	assert.Equal(t, "tops", product["category"])

	rec = s.do(t, http.MethodGet, "/api/products/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products/featured", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["products"], 1)

	rec = s.do(t, http.MethodGet, "/api/products/category/TOPS", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["products"], 1)

	rec = s.do(t, http.MethodPut, "/api/admin/products/"+id, gin.H{"price": 3900, "isFeatured": false}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	product = decode(t, rec)["product"].(map[string]interface{})
	assert.Equal(t, float64(3900), product["price"])
	assert.Equal(t, float64(12), product["stock"])

	rec = s.do(t, http.MethodGet, "/api/products?page=1&limit=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Len(t, out["products"], 1)
	assert.Equal(t, float64(1), out["pagination"].(map[string]interface{})["totalCount"])

	rec = s.do(t, http.MethodDelete, "/api/admin/products/"+id, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_BadRequests(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "admin@shop.test", "Password123!", true)
	admin := s.login(t, "admin@shop.test", "Password123!")

	rec := s.do(t, http.MethodGet, "/api/products/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/products", gin.H{"category": "tops"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/products", gin.H{"name": "Sock", "category": "tops", "price": -1}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/admin/products/00000000-0000-0000-0000-000000000001", gin.H{"price": 10}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
