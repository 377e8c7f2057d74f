package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/savoraddis/cafe-backend/controllers"
	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubOrderRepo struct {
	byTxRef   map[string]*models.Order
	list      []models.Order
	total     int64
	gotFilter repository.OrderFilter
	gotPage   int
	gotLimit  int
	delivered []uuid.UUID
	created   []*models.Order
	createErr error
	finalized bool
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byTxRef: make(map[string]*models.Order)}
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, order)
	s.byTxRef[order.TxRef] = order
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	for _, o := range s.byTxRef {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (s *stubOrderRepo) FindByTxRef(ctx context.Context, txRef string) (*models.Order, error) {
	o, ok := s.byTxRef[txRef]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) FindAll(ctx context.Context, filter repository.OrderFilter, page, limit int) ([]models.Order, int64, error) {
	s.gotFilter = filter
	s.gotPage = page
	s.gotLimit = limit
	return s.list, s.total, nil
}

func (s *stubOrderRepo) UpdatePaymentStatus(ctx context.Context, txRef, status string) (*models.Order, error) {
	o, ok := s.byTxRef[txRef]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if s.finalized || o.PaymentStatus != models.PaymentStatusPending {
		return o, repository.ErrAlreadyFinal
	}
	o.PaymentStatus = status
	return o, nil
}

func (s *stubOrderRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	o, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	o.OrderStatus = status
	return nil
}

func (s *stubOrderRepo) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	s.delivered = append(s.delivered, id)
	return nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	o, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	delete(s.byTxRef, o.TxRef)
	return nil
}

func setupOrderRouter(repo repository.OrderRepository) *gin.Engine {
	r := gin.New()
	oc := controllers.NewOrderController(repo)

	r.GET("/api/orders", oc.GetOrders)
	r.GET("/api/orders/:id", oc.GetOrderByID)
	r.PUT("/api/orders/:id/status", oc.UpdateStatus)
	r.PUT("/api/orders/:id/delivered", oc.MarkDelivered)
	r.DELETE("/api/orders/:id", oc.DeleteOrder)
	return r
}

func TestGetOrders_PaginationMeta(t *testing.T) {
	repo := newStubOrderRepo()
	repo.total = 25
	repo.list = []models.Order{{ID: uuid.New(), TxRef: "CAF-1-a"}}
	r := setupOrderRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, repo.gotPage)
	assert.Equal(t, 10, repo.gotLimit)

	var resp struct {
		Meta struct {
			TotalOrders int64 `json:"total_orders"`
			TotalPages  int64 `json:"total_pages"`
			HasMore     bool  `json:"has_more"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(25), resp.Meta.TotalOrders)
	assert.Equal(t, int64(3), resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasMore)
}

func TestGetOrders_Filters(t *testing.T) {
	repo := newStubOrderRepo()
	r := setupOrderRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?payment_status=paid&delivered=false", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", repo.gotFilter.PaymentStatus)
	if assert.NotNil(t, repo.gotFilter.Delivered) {
		assert.False(t, *repo.gotFilter.Delivered)
	}
}

func TestGetOrders_LimitIsCapped(t *testing.T) {
	repo := newStubOrderRepo()
	r := setupOrderRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?limit=5000", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, repo.gotLimit)
}

func TestGetOrderByID_InvalidID(t *testing.T) {
	r := setupOrderRouter(newStubOrderRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	r := setupOrderRouter(newStubOrderRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkDelivered_Success(t *testing.T) {
	repo := newStubOrderRepo()
	order := &models.Order{ID: uuid.New(), TxRef: "CAF-1-a", PaymentStatus: models.PaymentStatusPaid}
	repo.byTxRef[order.TxRef] = order
	r := setupOrderRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/delivered", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, repo.delivered, order.ID)
}
