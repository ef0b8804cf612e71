package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vuminhngo/techstore-backend/internal/loyalty"
	"github.com/vuminhngo/techstore-backend/internal/orders"
	"github.com/vuminhngo/techstore-backend/pkg/config"
	"github.com/vuminhngo/techstore-backend/pkg/db/models"
	"github.com/vuminhngo/techstore-backend/pkg/enums"
	pkgerrors "github.com/vuminhngo/techstore-backend/pkg/errors"
)

type stubOrdersService struct {
	createInput  *orders.CreateOrderInput
	updateInput  *orders.UpdateStatusInput
	confirmOrder string
	confirmUser  string
	err          error
}

func (s *stubOrdersService) Create(_ context.Context, input orders.CreateOrderInput) (*orders.CreateOrderResult, error) {
	s.createInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return &orders.CreateOrderResult{
		OrderID:      "order-1",
		PointsEarned: 120,
		FinalAmount:  decimal.NewFromInt(120000),
	}, nil
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, input orders.UpdateStatusInput) (*models.Order, error) {
	s.updateInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return &models.Order{ID: input.OrderID, Status: input.Target}, nil
}

func (s *stubOrdersService) ConfirmReceipt(_ context.Context, orderID, userID string) (*models.Order, error) {
	s.confirmOrder = orderID
	s.confirmUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return &models.Order{ID: orderID, Status: enums.OrderStatusCompleted}, nil
}

func (s *stubOrdersService) ListMine(context.Context, string) ([]orders.OrderSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []orders.OrderSummary{{ID: "order-1"}}, nil
}

func (s *stubOrdersService) ListAll(context.Context) ([]orders.OrderSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []orders.OrderSummary{{ID: "order-1"}, {ID: "order-2"}}, nil
}

type memorySettings struct {
	values map[string]string
}

func (m *memorySettings) GetSetting(_ context.Context, name string) (string, error) {
	if v, ok := m.values[name]; ok {
		return v, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeNotFound, "missing setting")
}

func (m *memorySettings) SetSetting(_ context.Context, name, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[name] = value
	return nil
}

func newTestRouter(svc orders.Service) http.Handler {
	settings := &memorySettings{}
	return NewRouter(Deps{
		Config:     &config.Config{App: config.AppConfig{Env: "test"}},
		Orders:     svc,
		Thresholds: loyalty.NewThresholdSource(settings, nil),
		Settings:   settings,
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(&stubOrdersService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateOrderRequiresIdentity(t *testing.T) {
	router := newTestRouter(&stubOrdersService{})

	body := bytes.NewBufferString(`{"items":[{"product_id":"p","quantity":1}],"shipping_name":"a","shipping_phone":"b","shipping_address":"c"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}
}

func TestCreateOrderPassesUserFromHeaders(t *testing.T) {
	svc := &stubOrdersService{}
	router := newTestRouter(svc)

	body := bytes.NewBufferString(`{"items":[{"product_id":"p","quantity":2}],"shipping_name":"a","shipping_phone":"b","shipping_address":"c"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.createInput == nil || svc.createInput.UserID != "user-1" {
		t.Fatalf("expected user id from header, got %+v", svc.createInput)
	}
	if len(svc.createInput.Items) != 1 || svc.createInput.Items[0].Quantity != 2 {
		t.Fatalf("unexpected decoded items %+v", svc.createInput.Items)
	}
}

func TestConfirmReceiptRoute(t *testing.T) {
	svc := &stubOrdersService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/order-9/receive", nil)
	req.Header.Set("X-User-Id", "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.confirmOrder != "order-9" || svc.confirmUser != "user-1" {
		t.Fatalf("unexpected confirm call: order=%q user=%q", svc.confirmOrder, svc.confirmUser)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router := newTestRouter(&stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-User-Role", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer role, got %d", w.Code)
	}
}

func TestAdminOrderListHonorsLimit(t *testing.T) {
	router := newTestRouter(&stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?limit=1", nil)
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data []orders.OrderSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected list truncated to 1, got %d", len(envelope.Data))
	}
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	svc := &stubOrdersService{}
	router := newTestRouter(svc)

	body := bytes.NewBufferString(`{"status":"shipping"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/order-3/status", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.updateInput == nil || svc.updateInput.OrderID != "order-3" || svc.updateInput.Target != enums.OrderStatusShipping {
		t.Fatalf("unexpected update input %+v", svc.updateInput)
	}
}

func TestAdminUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	router := newTestRouter(&stubOrdersService{})

	body := bytes.NewBufferString(`{"status":"teleported"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/order-3/status", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestAdminSettingsRoundTrip(t *testing.T) {
	router := newTestRouter(&stubOrdersService{})

	body := bytes.NewBufferString(`{"name":"level_gold","value":"7000"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/settings", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var envelope struct {
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if envelope.Data["level_gold"] != 7000 {
		t.Fatalf("expected stored override 7000, got %d", envelope.Data["level_gold"])
	}
	if envelope.Data["level_silver"] != loyalty.DefaultThresholds.Silver {
		t.Fatalf("expected default silver threshold, got %d", envelope.Data["level_silver"])
	}
}
