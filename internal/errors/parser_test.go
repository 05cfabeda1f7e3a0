package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/retailhub-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		action   string
		wantCode string
	}{
		{name: "nil", err: nil, wantCode: InternalServerError},
		{name: "corrupted store", err: fmt.Errorf("load: %w", repository.ErrStoreCorrupted), wantCode: InternalStorageError},
		{name: "file error", err: fmt.Errorf("write: %w", &fs.PathError{Op: "rename", Path: "/data/x", Err: fs.ErrPermission}), action: "create", wantCode: InternalStorageError},
		{name: "connection refused", err: fmt.Errorf("dial tcp 127.0.0.1:6379: connect: connection refused"), wantCode: InternalStorageError},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: InternalServerError},
		{name: "unknown", err: fmt.Errorf("boom"), action: "delete", wantCode: InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.action)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
			if tt.err != nil {
				assert.NotContains(t, info.Message, "/data/x")
			}
		})
	}
}

func TestRespondWithValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationError(c, map[string]string{"name": "name is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ValidationRequired, body.Error)
	assert.Equal(t, "name is required", body.Fields["name"])
}

func TestInternalError_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InternalError(c, "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"INTERNAL_SERVER_ERROR","message":"Something went wrong. Please try again later"}`, w.Body.String())
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParseAndRespond(c, fmt.Errorf("append: %w", repository.ErrStoreCorrupted), "create")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
	assert.Equal(t, InternalStorageError, decodeBody(t, w).Error)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
