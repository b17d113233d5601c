package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldplot/database"
)

func call(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_OK(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	code, body := call(t, NewHealthCtrl(db, nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["status"].(map[string]any)["ok"])
}

func TestHealth_NoDatabase(t *testing.T) {
	code, body := call(t, NewHealthCtrl(nil, nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	db := body["checks"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, "gorm db is nil", db["err"])
}
