package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/testutil"
	"roomhub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTest points the package-level DB at a fresh in-memory database and
// returns a router with the full API route table.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	testutil.SetTestConfig()
	database.DB = testutil.NewTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"))
	return router
}

func bearerToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return "Bearer " + token
}

// doRequest performs a JSON request against the test router. An empty token
// leaves the request unauthenticated.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeJSON[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func requireStatus(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, recorder.Code, "unexpected status, body: %s", recorder.Body.String())
}
