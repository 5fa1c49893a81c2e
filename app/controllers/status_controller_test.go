package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"postboard/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusControllerHome(t *testing.T) {
	controller := NewStatusController(mock.NewStore(), "test")

	w := httptest.NewRecorder()
	controller.Home(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h2>Posts API</h2>", w.Body.String())
}

func TestStatusControllerHealth(t *testing.T) {
	store := mock.NewStore()
	controller := NewStatusController(store, "test")

	type healthResponse struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Checks      struct {
			Store struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"store"`
		} `json:"checks"`
	}

	t.Run("healthy", func(t *testing.T) {
		w := httptest.NewRecorder()
		controller.Health(w, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var response healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test", response.Environment)
		assert.Equal(t, "healthy", response.Checks.Store.Status)
	})

	t.Run("unhealthy", func(t *testing.T) {
		store.FailWith(mock.OpPing, errStoreDown)
		defer store.FailWith(mock.OpPing, nil)

		w := httptest.NewRecorder()
		controller.Health(w, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var response healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "unhealthy", response.Checks.Store.Status)
		assert.Empty(t, response.Checks.Store.Error)
		assert.NotContains(t, w.Body.String(), errStoreDown.Error())
	})
}
