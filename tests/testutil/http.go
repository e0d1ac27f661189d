package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PerformRequest sends a JSON request through engine and returns the recorder
func PerformRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}, headers ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal to JSON")
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// JSONBody parses the recorder body as a JSON object
func JSONBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// AssertSuccessResponse asserts a success envelope with the given status
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()

	assert.Equal(t, status, w.Code, w.Body.String())
	resp := JSONBody(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Nil(t, resp["error"])
	return resp
}

// AssertErrorResponse asserts an error envelope with the given status and code
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) map[string]interface{} {
	t.Helper()

	assert.Equal(t, status, w.Code, w.Body.String())
	resp := JSONBody(t, w)
	assert.Equal(t, false, resp["success"])

	errMap, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, code, errMap["code"])
	return errMap
}

// Methods under test, re-exported for table tests
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodDelete = http.MethodDelete
)
