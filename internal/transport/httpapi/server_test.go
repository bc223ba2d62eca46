package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/source/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedStore() *memory.Store {
	return memory.New([]memory.Record{
		{Account: account.Account{ID: "001", Name: "Acme", Level: account.Level1}},
		{Account: account.Account{ID: "002", Name: "Globex", Level: account.Level2}},
		{Account: account.Account{ID: "003", Name: "Initech", Level: account.Level1}, Locked: true},
	})
}

func serve(t *testing.T, r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListAccounts(t *testing.T) {
	r := NewRouter(seedStore(), Options{})

	w := serve(t, r, http.MethodGet, "/api/accounts", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	var resp AccountsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Accounts, 3)
	assert.Contains(t, w.Body.String(), `"Level__c":"Level 1"`)
}

func TestListAccounts_BackendFailure(t *testing.T) {
	src := source.Funcs{FetchFunc: func(context.Context) ([]account.Account, error) {
		return nil, errors.New("db down")
	}}
	r := NewRouter(src, Options{})

	w := serve(t, r, http.MethodGet, "/api/accounts?refresh=true", "", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"failed to load accounts"}`, w.Body.String())
}

func TestUpdateAccounts(t *testing.T) {
	r := NewRouter(seedStore(), Options{})

	w := serve(t, r, http.MethodPost, "/api/accounts/update", `{"ids":["001","003"]}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"✅ 001 updated", "❌ 003 failed: locked"}, resp.Messages)
}

func TestUpdateAccounts_BadRequests(t *testing.T) {
	r := NewRouter(seedStore(), Options{})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"ids":`},
		{name: "missing ids", body: `{}`},
		{name: "empty ids", body: `{"ids":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, r, http.MethodPost, "/api/accounts/update", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestJWT(t *testing.T) {
	secret := []byte("test-secret")
	r := NewRouter(seedStore(), Options{JWTSecret: secret})

	t.Run("missing token", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/accounts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := IssueToken([]byte("other"), "ana", time.Minute)
		require.NoError(t, err)
		w := serve(t, r, http.MethodGet, "/api/accounts", "", http.Header{"Authorization": {"Bearer " + tok}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := IssueToken(secret, "ana", -time.Minute)
		require.NoError(t, err)
		w := serve(t, r, http.MethodGet, "/api/accounts", "", http.Header{"Authorization": {"Bearer " + tok}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid", func(t *testing.T) {
		tok, err := IssueToken(secret, "ana", time.Minute)
		require.NoError(t, err)
		w := serve(t, r, http.MethodGet, "/api/accounts", "", http.Header{"Authorization": {"Bearer " + tok}})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health is public", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORS(t *testing.T) {
	r := NewRouter(seedStore(), Options{AllowOrigins: []string{"http://localhost:5173"}})

	w := serve(t, r, http.MethodOptions, "/api/accounts", "", http.Header{
		"Origin":                        {"http://localhost:5173"},
		"Access-Control-Request-Method": {http.MethodPost},
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNoRoute(t *testing.T) {
	r := NewRouter(seedStore(), Options{})
	w := serve(t, r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
