package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/savoraddis/cafe-backend/controllers"
	"github.com/savoraddis/cafe-backend/logger"
	"github.com/savoraddis/cafe-backend/middleware"
	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// stubCartRepo keeps carts in memory; good enough for controller wiring tests.
type stubCartRepo struct {
	carts map[string]*models.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*models.Cart)}
}

func (s *stubCartRepo) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	return s.carts[sessionID], nil
}

func (s *stubCartRepo) SaveCart(ctx context.Context, cart *models.Cart) error {
	s.carts[cart.SessionID] = cart
	return nil
}

func (s *stubCartRepo) DeleteCart(ctx context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

func setupCartRouter(svc *services.CartService) *gin.Engine {
	r := gin.New()
	cc := controllers.NewCartController(svc)

	session := r.Group("/api")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/cart", cc.GetCart)
		session.POST("/cart/items", cc.AddItem)
		session.PATCH("/cart/items/:item_id", cc.ChangeQuantity)
		session.DELETE("/cart/items/:item_id", cc.RemoveLine)
		session.DELETE("/cart", cc.ClearCart)
	}
	return r
}

func doCartRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetCart_RequiresSessionHeader(t *testing.T) {
	r := setupCartRouter(services.NewCartService(newStubCartRepo()))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "X-Session-ID")
}

func TestGetCart_EmptyCart(t *testing.T) {
	r := setupCartRouter(services.NewCartService(newStubCartRepo()))

	w := doCartRequest(r, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.Empty(t, cart.Lines)
}

func TestAddItem_RoundTrip(t *testing.T) {
	r := setupCartRouter(services.NewCartService(newStubCartRepo()))

	w := doCartRequest(r, http.MethodPost, "/api/cart/items",
		`{"item_id":"espresso","cafe_id":"cambridge","name":"Espresso","unit_price":50}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	if assert.Len(t, cart.Lines, 1) {
		assert.Equal(t, 1, cart.Lines[0].Quantity)
		assert.Equal(t, 50.0, cart.Lines[0].UnitPrice)
	}
}

func TestAddItem_InvalidPayload(t *testing.T) {
	r := setupCartRouter(services.NewCartService(newStubCartRepo()))

	// missing unit_price
	w := doCartRequest(r, http.MethodPost, "/api/cart/items",
		`{"item_id":"espresso","cafe_id":"cambridge","name":"Espresso"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItem_CrossCafeConflict(t *testing.T) {
	r := setupCartRouter(services.NewCartService(newStubCartRepo()))

	w := doCartRequest(r, http.MethodPost, "/api/cart/items",
		`{"item_id":"espresso","cafe_id":"cambridge","name":"Espresso","unit_price":50}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(r, http.MethodPost, "/api/cart/items",
		`{"item_id":"burger","cafe_id":"bingham","name":"Burger","unit_price":80}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "different cafes")
}

func TestChangeQuantity_UnknownLine(t *testing.T) {
	r := setupCartRouter(services.NewCartService(newStubCartRepo()))

	w := doCartRequest(r, http.MethodPatch, "/api/cart/items/nope", `{"delta":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	repo := newStubCartRepo()
	r := setupCartRouter(services.NewCartService(repo))

	w := doCartRequest(r, http.MethodPost, "/api/cart/items",
		`{"item_id":"espresso","cafe_id":"cambridge","name":"Espresso","unit_price":50}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(r, http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, repo.carts["sess-1"])
}
