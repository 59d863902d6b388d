package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/gin-gonic/gin"
)

func TestResponseFailedCarriesErrorKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		code int
		want constant.ErrorKind
	}{
		{http.StatusBadRequest, constant.ErrKindValidation},
		{http.StatusUnauthorized, constant.ErrKindUnauth},
		{http.StatusForbidden, constant.ErrKindForbidden},
		{http.StatusNotFound, constant.ErrKindNotFound},
		{http.StatusConflict, constant.ErrKindConflict},
		{http.StatusTooManyRequests, constant.ErrKindRateLimit},
		{http.StatusInternalServerError, constant.ErrKindInternal},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)

		ResponseFailed(ctx, tt.code, "", errors.New("nope"), nil)

		var body Response
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if w.Code != tt.code || body.Success || body.Error != tt.want || body.Message != constant.REQUEST_UNSUCCESSFUL {
			t.Errorf("code %d: got status %d body %+v", tt.code, w.Code, body)
		}
	}
}
