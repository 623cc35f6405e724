package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cremacao_pet/internal/adapter/http/handlers"
	"cremacao_pet/internal/adapter/persistence/repository"
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/infrastructure/cache"
	"cremacao_pet/internal/infrastructure/metrics"
	"cremacao_pet/internal/infrastructure/notification"
	"cremacao_pet/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	m := metrics.NewPrometheus()
	inbox := notification.NewInbox(0, log)

	removals := repository.NewRemovalMemoryRepository()
	prices := repository.NewPriceMemoryRepository(entities.NewPriceTable())
	stockRepo := repository.NewStockMemoryRepository()
	batchRepo := repository.NewCremationBatchMemoryRepository()

	store := usecase.NewRemovalStore(removals, prices, inbox, m, log)
	stock := usecase.NewStockUseCase(stockRepo, inbox, m, log)
	transitions := usecase.NewTransitionUseCase(store, prices, stock, nil, cache.NewMemoryLocker(0), m, log, usecase.TransitionOptions{})

	router := NewRouter(Handlers{
		Removals:      handlers.NewRemovalHandler(store, transitions, log),
		Batches:       handlers.NewCremationBatchHandler(usecase.NewCremationBatchUseCase(batchRepo, store, inbox, m, log), log),
		Stock:         handlers.NewStockHandler(stock, log),
		Prices:        handlers.NewPriceTableHandler(usecase.NewPriceTableUseCase(prices, log), log),
		Lotes:         handlers.NewBillingLoteHandler(usecase.NewBillingLoteUseCase(store, m, log), log),
		Notifications: handlers.NewNotificationHandler(inbox, log),
	}, log, m)
	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path string, actor entities.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor.Role != "" {
		req.Header.Set(handlers.HeaderUserRole, string(actor.Role))
		req.Header.Set(handlers.HeaderUserID, actor.ID)
		req.Header.Set(handlers.HeaderUserName, actor.Name)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

var (
	receptor = entities.Actor{ID: "rec-1", Name: "Ana", Role: entities.RoleReceptor}
	driver   = entities.Actor{ID: "drv-1", Name: "Carlos", Role: entities.RoleMotorista}
	admin    = entities.Actor{ID: "adm-1", Name: "Admin", Role: entities.RoleAdmin}
	client   = entities.Actor{ID: "clinic-9", Name: "Clínica", Role: entities.RoleCliente}
)

func TestRouter_PublicAndIdentity(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/ping", entities.Actor{}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/removals", entities.Actor{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/v1/removals", entities.Actor{Role: entities.RoleSystem}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "system role is reserved for the sweep")

	w = s.do(t, http.MethodGet, "/metrics", entities.Actor{}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cremacao_http_request_duration_seconds")
}

func TestRouter_RemovalLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/v1/prices/cells", admin,
		`{"region":"curitiba_rm","species_type":"normal","billing_type":"nao_faturado","weight_bracket":"0-5kg","modality":"individual_prata","price":"500"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPut, "/v1/prices/cells", receptor,
		`{"region":"curitiba_rm","species_type":"normal","billing_type":"nao_faturado","weight_bracket":"0-5kg","modality":"coletivo","price":"200"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/v1/removals", receptor,
		`{"pet":{"name":"Rex","species":"cachorro","weight":"0-5kg"},"address":{"city":"Curitiba","state":"PR"},"modality":"individual_prata","payment_method":"pix"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, "solicitada", created["status"])
	assert.Equal(t, "500", created["value"])
	assert.Equal(t, 1.0, created["version"])

	t.Run("invalid payload", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/v1/removals", receptor, `{"pet":{"name":"Rex"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown removal", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/v1/removals/nope", receptor, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	w = s.do(t, http.MethodGet, "/v1/removals/"+id+"/actions", receptor, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "direct_to_driver")

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/start-route", driver, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode(t, w)["code"])

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/direct-to-driver", receptor, `{"version":1,"driver_id":"drv-1","driver_name":"Carlos"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "em_andamento", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/cancel", receptor, `{"version":1,"reason":"duplicada"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "VERSION_CONFLICT", decode(t, w)["code"])

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/cancel", receptor, `{"reason":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["detail"])

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/start-route", driver, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "a_caminho", body["status"])
	assert.Equal(t, 3.0, body["version"])
	assert.Len(t, body["history"], 3)

	w = s.do(t, http.MethodGet, "/v1/removals?status=a_caminho", receptor, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = s.do(t, http.MethodGet, "/v1/removals", client, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), "clients only see their own removals")

	w = s.do(t, http.MethodGet, "/v1/notifications?unread=true", receptor, "")
	require.Equal(t, http.StatusOK, w.Code)
	inbox := decode(t, w)
	assert.GreaterOrEqual(t, inbox["unread"], 1.0)
	first := inbox["items"].([]any)[0].(map[string]any)

	w = s.do(t, http.MethodPost, "/v1/notifications/"+first["id"].(string)+"/read", receptor, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/v1/notifications/"+first["id"].(string)+"/read", driver, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ClientSeesOnlyOwnRemovals(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPut, "/v1/prices/cells", admin,
		`{"region":"curitiba_rm","species_type":"normal","billing_type":"nao_faturado","weight_bracket":"0-5kg","modality":"individual_prata","price":"500"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := `{"pet":{"name":"Rex","species":"cachorro","weight":"0-5kg"},"address":{"city":"Curitiba","state":"PR"},"modality":"individual_prata","payment_method":"pix"}`
	w = s.do(t, http.MethodPost, "/v1/removals", receptor, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	foreign := decode(t, w)["id"].(string)

	w = s.do(t, http.MethodPost, "/v1/removals", client, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	own := decode(t, w)["id"].(string)

	w = s.do(t, http.MethodGet, "/v1/removals/"+own, client, "")
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{
		"/v1/removals/" + foreign,
		"/v1/removals/" + foreign + "/actions",
		"/v1/removals/" + foreign + "/preview/modality-change?modality=coletivo",
	} {
		w = s.do(t, http.MethodGet, path, client, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "REMOVAL_NOT_FOUND", decode(t, w)["code"], path)
	}

	w = s.do(t, http.MethodGet, "/v1/removals/"+foreign, receptor, "")
	assert.Equal(t, http.StatusOK, w.Code, "staff roles are not restricted")
}

func TestRouter_SchedulePickup(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/removals", receptor,
		`{"pet":{"name":"Rex","species":"cachorro","weight":"0-5kg"},"address":{"city":"Curitiba","state":"PR"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/schedule-pickup", receptor, `{"version":1,"scheduled_date":"2099-01-05"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/v1/removals/"+id+"/schedule-pickup", receptor, `{"version":1,"scheduled_date":"2099-01-05","scheduled_time":"10:00"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "agendada", body["status"])
	assert.Equal(t, "2099-01-05", body["scheduled_date"])
}

func TestRouter_StockAndBatches(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/stock", admin, `{"name":"URNA","quantity":1,"min_alert_quantity":2,"unit_price":"90"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["low"])

	w = s.do(t, http.MethodPost, "/v1/stock", admin, `{"name":"urna"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/v1/stock/URNA/restock", admin, `{"quantity":4}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 5.0, decode(t, w)["quantity"])

	w = s.do(t, http.MethodPost, "/v1/stock/CAIXA/restock", admin, `{"quantity":4}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/v1/batches", admin,
		`{"items":[{"removal_code":"A","position":"centro"},{"removal_code":"B","position":"frente_direita"},{"removal_code":"C","position":"frente_esquerda"},{"removal_code":"D","position":"fundo_direita"},{"removal_code":"E","position":"fundo_esquerda"}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "members are looked up before the batch is stored")
	assert.Equal(t, "REMOVAL_NOT_FOUND", decode(t, w)["code"])

	w = s.do(t, http.MethodGet, "/v1/batches/missing", admin, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/v1/lotes", admin, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
