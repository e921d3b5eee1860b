package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocart-api/internal/domain"
)

func productFields() map[string]string {
	return map[string]string{
		"name":        "Mug",
		"description": "ceramic",
		"mrp":         "20",
		"price":       "15",
		"category":    "kitchen",
	}
}

func TestProductCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "sellerU")
	env.seedStore(t, "sellerU", "shop", domain.StoreStatusApproved)

	w := env.do(formReq(t, http.MethodPost, "/api/v1/store/product", "sellerU",
		productFields(), map[string][]string{"image": {"a.jpg", "b.jpg"}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product added successfully", decodeBody(t, w)["message"])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/store/product", nil)
	req.Header.Set("X-Test-User", "sellerU")
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	products := decodeBody(t, w)["products"].([]any)
	require.Len(t, products, 1)
	p := products[0].(map[string]any)
	assert.Equal(t, "Mug", p["name"])
	assert.EqualValues(t, 15, p["price"])
	images := p["images"].([]any)
	require.Len(t, images, 2)
	assert.Equal(t, "https://cdn.test/tr:w-1024/products/a.jpg", images[0])
}

func TestProductCreate_RequiresApprovedStore(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "pendingU")
	env.seedStore(t, "pendingU", "pend", domain.StoreStatusPending)
	env.seedUser(t, "noStoreU")

	for _, user := range []string{"pendingU", "noStoreU", ""} {
		w := env.do(formReq(t, http.MethodPost, "/api/v1/store/product", user,
			productFields(), map[string][]string{"image": {"a.jpg"}}))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
	}

	var n int64
	env.db.Model(&domain.Product{}).Count(&n)
	assert.Zero(t, n)
}

func TestProductCreate_MissingInfo(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "sellerU")
	env.seedStore(t, "sellerU", "shop", domain.StoreStatusApproved)

	// 无图
	w := env.do(formReq(t, http.MethodPost, "/api/v1/store/product", "sellerU", productFields(), nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing product info", decodeBody(t, w)["error"])

	// 非法价格按缺失处理
	fields := productFields()
	fields["price"] = "abc"
	w = env.do(formReq(t, http.MethodPost, "/api/v1/store/product", "sellerU",
		fields, map[string][]string{"image": {"a.jpg"}}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing product info", decodeBody(t, w)["error"])
}

func TestProductList_EmptyStore(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "sellerU")
	env.seedStore(t, "sellerU", "shop", domain.StoreStatusApproved)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/store/product", nil)
	req.Header.Set("X-Test-User", "sellerU")
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["products"])
}
