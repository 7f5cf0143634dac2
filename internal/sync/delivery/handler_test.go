package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"warmup-monitor-backend/internal/sync/usecase"

	"github.com/gin-gonic/gin"
)

// fakeSyncUsecase returns a canned result or error.
type fakeSyncUsecase struct {
	result *usecase.SyncResult
	err    error
	called bool
}

func (f *fakeSyncUsecase) ProcessPayload(payload any) (*usecase.SyncResult, error) {
	f.called = true
	return f.result, f.err
}

func (f *fakeSyncUsecase) LastSuccessfulSyncAt() (*time.Time, error) {
	return nil, nil
}

func newWebhookRouter(uc usecase.SyncUsecase, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/webhook", NewWebhookHandler(uc, secret).HandleWebhook)
	return router
}

func postWebhook(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleWebhook_SecretRejection(t *testing.T) {
	uc := &fakeSyncUsecase{result: &usecase.SyncResult{}}
	router := newWebhookRouter(uc, "s3cret")

	cases := []struct {
		name    string
		headers map[string]string
	}{
		{"missing header", nil},
		{"wrong token", map[string]string{"Authorization": "Bearer nope"}},
		{"wrong scheme", map[string]string{"Authorization": "s3cret"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postWebhook(router, `{}`, tc.headers)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("got status %d, want 401", w.Code)
			}
		})
	}
	if uc.called {
		t.Error("rejected requests must not reach the pipeline")
	}

	w := postWebhook(router, `{"items":[]}`, map[string]string{"Authorization": "Bearer s3cret"})
	if w.Code != http.StatusOK {
		t.Errorf("valid token got status %d, want 200", w.Code)
	}
}

func TestHandleWebhook_NoSecretConfigured(t *testing.T) {
	uc := &fakeSyncUsecase{result: &usecase.SyncResult{NoOp: true}}
	router := newWebhookRouter(uc, "")

	w := postWebhook(router, `{}`, nil)
	if w.Code != http.StatusOK {
		t.Errorf("got status %d, want 200 when no secret is configured", w.Code)
	}
}

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	uc := &fakeSyncUsecase{result: &usecase.SyncResult{}}
	router := newWebhookRouter(uc, "")

	w := postWebhook(router, `{"items": [`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", w.Code)
	}
	if uc.called {
		t.Error("malformed JSON must not reach the pipeline")
	}
}

func TestHandleWebhook_SuccessShape(t *testing.T) {
	uc := &fakeSyncUsecase{result: &usecase.SyncResult{
		AccountsProcessed:  3,
		CampaignsProcessed: 2,
		AccountAlerts:      1,
		DomainAlerts:       1,
	}}
	router := newWebhookRouter(uc, "")

	w := postWebhook(router, `{"items":[{"email":"a@corp.io"}]}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	var body struct {
		Success   bool `json:"success"`
		Processed struct {
			Accounts  int `json:"accounts"`
			Campaigns int `json:"campaigns"`
		} `json:"processed"`
		Alerts struct {
			Accounts int `json:"accounts"`
			Domains  int `json:"domains"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success || body.Processed.Accounts != 3 || body.Processed.Campaigns != 2 {
		t.Errorf("unexpected processed counts: %+v", body)
	}
	if body.Alerts.Accounts != 1 || body.Alerts.Domains != 1 {
		t.Errorf("unexpected alert counts: %+v", body)
	}
}

func TestHandleWebhook_OpaqueError(t *testing.T) {
	uc := &fakeSyncUsecase{err: errors.New("pq: connection refused on host db.internal")}
	router := newWebhookRouter(uc, "")

	w := postWebhook(router, `{"items":[{"email":"a@corp.io"}]}`, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db.internal") {
		t.Error("response must not leak internal error detail")
	}
}
