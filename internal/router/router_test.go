package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/car-doctor/internal/config"
	"github.com/deppfellow/car-doctor/internal/handler"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/deppfellow/car-doctor/internal/repository/memory"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var batteryID = primitive.NewObjectID()

func testConfig(guard string) *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "local"
	obs.HealthChecks.Checks = []string{"database"}

	return &config.Config{
		Primary: config.Primary{Env: "local"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
			TokenRateLimit:     100,
			TokenRateBurst:     100,
		},
		Auth: config.AuthConfig{
			SecretKey:  "router-test-secret",
			TokenTTL:   time.Hour,
			OrderGuard: guard,
		},
		Integration:   config.IntegrationConfig{EmailFrom: "bookings@cardoctor.test"},
		Observability: obs,
	}
}

type testApp struct {
	e      *echo.Echo
	auth   *service.AuthService
	orders *memory.OrderRepository
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	orders := memory.NewOrderRepository()
	catalog := memory.NewServiceRepository(
		model.Service{Title: "Full Car Repair", Price: 200, Description: "everything"},
		model.Service{Title: "Engine Oil Change", Price: 20},
		model.Service{ID: batteryID, ServiceID: "03", Title: "Battery Charge", Price: 120, Img: "battery.jpg", Description: "long text"},
		model.Service{Title: "Engine Repair", Price: 150},
	)

	services := &service.Services{
		Auth:    service.NewAuthService(cfg.Auth),
		Catalog: service.NewCatalogService(catalog),
		Orders:  service.NewOrderService(orders, nil, &logger),
	}

	return &testApp{
		e:      NewRouter(s, handler.NewHandlers(s, services), services),
		auth:   services.Auth,
		orders: orders,
	}
}

func (a *testApp) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) bearer(t *testing.T, email string) map[string]string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/jwt", `{"email":"`+email+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)

	return map[string]string{echo.HeaderAuthorization: "Bearer " + res.Token}
}

func (a *testApp) createOrder(t *testing.T, email string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/orders", `{"customerName":"Ann","email":"`+email+`","service":"Engine Repair","price":150,"status":"pending"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.InsertResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Acknowledged)
	return res.InsertedID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRoot(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "car doctor server is running....", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestIssueToken_Validation(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodPost, "/jwt", `{"email":"not-an-email"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/jwt", `{"email":"a@x.com","admin":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueToken_RateLimited(t *testing.T) {
	cfg := testConfig(config.OrderGuardRequired)
	cfg.Server.TokenRateLimit = 0.001
	cfg.Server.TokenRateBurst = 2
	app := newTestApp(t, cfg)

	for i := 0; i < 2; i++ {
		rec := app.do(t, http.MethodPost, "/jwt", `{"email":"a@x.com"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := app.do(t, http.MethodPost, "/jwt", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec)["code"])
}

func TestListServices(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodGet, "/services?search=engine&sort=asc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var services []model.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	require.Len(t, services, 2)
	assert.Equal(t, "Engine Oil Change", services[0].Title)
	assert.Equal(t, "Engine Repair", services[1].Title)

	rec = app.do(t, http.MethodGet, "/services", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	require.Len(t, services, 4)
	assert.Equal(t, "Full Car Repair", services[0].Title)

	rec = app.do(t, http.MethodGet, "/services?search=paint", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetService(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodGet, "/services/"+batteryID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"_id":"`+batteryID.Hex()+`","service_id":"03","title":"Battery Charge","price":120,"img":"battery.jpg"}`,
		rec.Body.String())

	rec = app.do(t, http.MethodGet, "/services/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/services/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_RECORD_ID", decodeError(t, rec)["code"])
}

func TestListOrders_RequiredGuard(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))
	app.createOrder(t, "a@x.com")
	app.createOrder(t, "b@x.com")

	rec := app.do(t, http.MethodGet, "/orders?email=a@x.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized access", decodeError(t, rec)["message"])

	rec = app.do(t, http.MethodGet, "/orders?email=a@x.com", "", map[string]string{echo.HeaderAuthorization: "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	auth := app.bearer(t, "a@x.com")

	rec = app.do(t, http.MethodGet, "/orders?email=b@x.com", "", auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", decodeError(t, rec)["message"])

	rec = app.do(t, http.MethodGet, "/orders?email=someone-else", "", auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", decodeError(t, rec)["message"])

	rec = app.do(t, http.MethodGet, "/orders?email=a@x.com", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "a@x.com", mine[0].Email)

	rec = app.do(t, http.MethodGet, "/orders", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestListOrders_OptionalGuard(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardOptional))
	app.createOrder(t, "a@x.com")

	rec := app.do(t, http.MethodGet, "/orders?email=a@x.com", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/orders?email=a@x.com", "", app.bearer(t, "b@x.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/orders", "", map[string]string{echo.HeaderAuthorization: "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOrders_DefaultGuardAllowsAnonymous(t *testing.T) {
	app := newTestApp(t, testConfig(""))
	app.createOrder(t, "a@x.com")
	app.createOrder(t, "b@x.com")

	rec := app.do(t, http.MethodGet, "/orders", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var all []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = app.do(t, http.MethodGet, "/orders?email=someone-else", "", app.bearer(t, "a@x.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListOrders_DisabledGuard(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardDisabled))
	app.createOrder(t, "a@x.com")

	rec := app.do(t, http.MethodGet, "/orders?email=a@x.com", "", map[string]string{echo.HeaderAuthorization: "Bearer garbage"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateOrder_StrictBody(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodPost, "/orders", `{"email":"a@x.com","isAdmin":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/orders", `{"customerName":"Ann"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec)["errors"])
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))
	id := app.createOrder(t, "a@x.com")

	rec := app.do(t, http.MethodPatch, "/orders/"+id, `{"status":"confirm"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t,
		`{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0,"upsertedId":null}`,
		rec.Body.String())

	rec = app.do(t, http.MethodPatch, "/orders/"+primitive.NewObjectID().Hex(), `{"status":"confirm"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matchedCount":0`)

	rec = app.do(t, http.MethodPatch, "/orders/"+id, `{"status":"confirm","price":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPatch, "/orders/nope", `{"status":"confirm"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodDelete, "/orders/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rec.Body.String())

	rec = app.do(t, http.MethodDelete, "/orders/"+id, "", nil)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":0}`, rec.Body.String())
}

func TestOrder_StoredAsSubmittedAndPatchOnlyTouchesStatus(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))
	auth := app.bearer(t, "c@x.com")

	body := `{"customerName":"Cara","email":"c@x.com","img":"https://img.test/brake.jpg",` +
		`"date":"2024-05-01","service":"Brake Check","service_id":"03","price":80.5,` +
		`"phone":"555-0100","message":"squeaks","status":"pending"}`
	rec := app.do(t, http.MethodPost, "/orders", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var inserted model.InsertResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inserted))

	id, err := primitive.ObjectIDFromHex(inserted.InsertedID)
	require.NoError(t, err)

	want := model.Order{
		ID:           id,
		CustomerName: "Cara",
		Email:        "c@x.com",
		Img:          "https://img.test/brake.jpg",
		Date:         "2024-05-01",
		Service:      "Brake Check",
		ServiceID:    "03",
		Price:        80.5,
		Phone:        "555-0100",
		Message:      "squeaks",
		Status:       "pending",
	}

	listMine := func() []model.Order {
		rec := app.do(t, http.MethodGet, "/orders?email=c@x.com", "", auth)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var orders []model.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		return orders
	}

	assert.Equal(t, []model.Order{want}, listMine())

	rec = app.do(t, http.MethodPatch, "/orders/"+inserted.InsertedID, `{"status":"confirm"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	want.Status = "confirm"
	assert.Equal(t, []model.Order{want}, listMine())
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec)["message"])
}

func TestStatus_DatabaseNotConnected(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "unhealthy", body["status"])
}

func TestEmailPreview(t *testing.T) {
	app := newTestApp(t, testConfig(config.OrderGuardRequired))

	rec := app.do(t, http.MethodGet, "/emails/preview/order_confirmation", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Engine Oil Change")

	rec = app.do(t, http.MethodGet, "/emails/preview/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmailPreview_HiddenInProduction(t *testing.T) {
	cfg := testConfig(config.OrderGuardRequired)
	cfg.Observability.Environment = "production"
	app := newTestApp(t, cfg)

	rec := app.do(t, http.MethodGet, "/emails/preview/order_confirmation", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
