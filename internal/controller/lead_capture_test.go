package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appcontext "github.com/SeakMengs/AutoRFP/internal/app_context"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The app has no repository, so any handler that reaches the database would panic.
func newLeadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &appcontext.Application{
		Config: &config.Config{FrontURL: "http://localhost:3000"},
		Logger: util.NewLogger(),
	}
	lc := LeadCaptureController{baseController: newBaseController(app)}

	r := gin.New()
	r.POST("/api/lead-capture/:uniqueCode", lc.SubmitLead)
	return r
}

func postLead(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/lead-capture/abc123", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w, decodeResponse(t, w)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var res util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestSubmitLeadRejectsInvalidEmail(t *testing.T) {
	r := newLeadRouter(t)

	w, res := postLead(t, r, `{"name":"Jane Doe","email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, res.Success)
	assert.Equal(t, constant.ErrKindValidation, res.Error)
}

func TestSubmitLeadRejectsMissingName(t *testing.T) {
	r := newLeadRouter(t)

	for _, body := range []string{
		`{"email":"jane@example.com"}`,
		`{"name":"   ","email":"jane@example.com"}`,
	} {
		w, res := postLead(t, r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, constant.ErrKindValidation, res.Error, body)
	}
}

func TestSubmitLeadRejectsMissingEmail(t *testing.T) {
	r := newLeadRouter(t)

	w, _ := postLead(t, r, `{"name":"Jane Doe"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
