package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Siti   Rahma  ", "Siti Rahma"},
		{"Budi", "Budi"},
		{"\tAna\n Lee ", "Ana Lee"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in))
	}
}

func runResponder(t *testing.T, fn func(c *gin.Context)) (int, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestResponders(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name    string
		fn      func(c *gin.Context)
		status  int
		success bool
	}{
		{"not found", func(c *gin.Context) { CallErrorNotFound(c, APIErrorParams{Msg: "missing", Err: errBoom}) }, http.StatusNotFound, false},
		{"user error", func(c *gin.Context) { CallUserError(c, APIErrorParams{Msg: "bad", Err: errBoom}) }, http.StatusBadRequest, false},
		{"server error", func(c *gin.Context) { CallServerError(c, APIErrorParams{Msg: "oops", Err: errBoom}) }, http.StatusInternalServerError, false},
		{"unauthorized", func(c *gin.Context) { CallUserNotAuthorized(c, APIErrorParams{Msg: "who", Err: errBoom}) }, http.StatusUnauthorized, false},
		{"forbidden", func(c *gin.Context) { CallForbidden(c, APIErrorParams{Msg: "no", Err: errBoom}) }, http.StatusForbidden, false},
		{"too many", func(c *gin.Context) { CallTooManyRequests(c, APIErrorParams{Msg: "slow", Err: errBoom}) }, http.StatusTooManyRequests, false},
		{"ok", func(c *gin.Context) { CallSuccessOK(c, APISuccessParams{Msg: "ok", Data: 1}) }, http.StatusOK, true},
		{"created", func(c *gin.Context) { CallSuccessCreated(c, APISuccessParams{Msg: "made", Data: 1}) }, http.StatusCreated, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := runResponder(t, tt.fn)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.success, resp.Success)
			if !tt.success {
				assert.Equal(t, "boom", resp.Error)
			} else {
				assert.Empty(t, resp.Error)
			}
		})
	}
}
