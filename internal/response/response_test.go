package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StatusLabel(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusOK, StatusSuccess},
		{http.StatusCreated, StatusSuccess},
		{http.StatusFound, StatusSuccess},
		{http.StatusBadRequest, StatusError},
		{http.StatusNotFound, StatusError},
		{http.StatusInternalServerError, StatusError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "msg", nil).Status, "code %d", tt.code)
	}
}

func TestJSON_WritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, "Project created successfully", map[string]string{"id": "p1"})

	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Project created successfully", body["message"])
	assert.Equal(t, map[string]any{"id": "p1"}, body["data"])
}

func TestJSON_NilDataIsNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "Logout Successfully", nil)

	assert.JSONEq(t, `{"status":"success","message":"Logout Successfully","data":null}`, w.Body.String())
}
