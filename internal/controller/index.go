package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

type endpointGroup struct {
	Group     string   `json:"group"`
	Endpoints []string `json:"endpoints"`
}

var endpointDirectory = []endpointGroup{
	{"auth", []string{
		"POST /api/auth/register", "POST /api/auth/login", "POST /api/auth/logout", "POST /api/auth/refresh",
		"POST /api/auth/forgot-password", "POST /api/auth/reset-password", "POST /api/auth/jwt/access/verify", "GET /api/auth/me",
		"GET /api/auth/google", "GET /api/auth/google/callback",
	}},
	{"profile", []string{
		"GET /api/profile", "PUT /api/profile", "DELETE /api/profile", "GET /api/profile/strength",
		"GET /api/profile/marketplace", "GET /api/profile/:id",
	}},
	{"documents", []string{
		"GET /api/documents", "POST /api/documents/upload", "POST /api/documents/upload-multiple",
		"GET /api/documents/:id", "GET /api/documents/:id/download", "DELETE /api/documents/:id",
	}},
	{"rfp", []string{
		"GET /api/rfp", "POST /api/rfp/upload", "GET /api/rfp/:id", "POST /api/rfp/:id/reparse",
		"PUT /api/rfp/:id/validate", "DELETE /api/rfp/:id", "GET /api/rfp/:id/download",
	}},
	{"proposals", []string{
		"POST /api/proposals", "POST /api/proposals/generate", "POST /api/proposals/generate-batch",
		"GET /api/proposals", "GET /api/proposals/:id", "PUT /api/proposals/:id", "PUT /api/proposals/:id/status",
		"PUT /api/proposals/:id/withdraw", "POST /api/proposals/:id/refine", "POST /api/proposals/:id/scorecard",
		"GET /api/proposals/:id/timeline", "DELETE /api/proposals/:id",
		"GET /api/proposals/:id/export/docx", "GET /api/proposals/:id/export/pdf",
	}},
	{"team", []string{
		"POST /api/team/invite", "GET /api/team/proposal/:proposalId", "GET /api/team/invitations",
		"GET /api/team/invitations/token/:token", "POST /api/team/invitations/:id/accept",
		"POST /api/team/invitations/:id/decline", "DELETE /api/team/proposal/:proposalId/member/:memberId",
	}},
	{"analytics", []string{
		"GET /api/analytics/proposal-times", "GET /api/analytics/team-responses",
		"POST /api/analytics/track-stage", "PUT /api/analytics/track-stage/:id/complete",
	}},
	{"qrCodes", []string{
		"POST /api/qr-codes", "GET /api/qr-codes", "GET /api/qr-codes/:id", "PATCH /api/qr-codes/:id",
		"DELETE /api/qr-codes/:id", "GET /api/qr-codes/:id/image.png", "GET /api/qr-codes/:id/image.svg",
		"GET /api/qr-codes/:id/leads",
	}},
	{"leadCapture", []string{"GET /api/lead-capture/:uniqueCode", "POST /api/lead-capture/:uniqueCode"}},
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"name":      util.GetAppName(),
		"endpoints": endpointDirectory,
	})
}

// Health reports database reachability. The process answers even when the database is down.
func (ic IndexController) Health(ctx *gin.Context) {
	status := "ok"
	database := "ok"

	c, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if ic.app.Repository == nil || ic.app.Repository.DB == nil {
		database = "unavailable"
	} else if sqlDB, err := ic.app.Repository.DB.DB(); err != nil || sqlDB.PingContext(c) != nil {
		database = "unavailable"
	}
	if database != "ok" {
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}
