package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

// LeadCaptureController serves the public page behind a printed QR code. No route here
// requires authentication.
type LeadCaptureController struct {
	*baseController
}

var (
	ErrLeadNameRequired = errors.New("name is required")
	ErrLeadEmailInvalid = errors.New("email is not a valid email address")
)

func (lc LeadCaptureController) activeCode(ctx *gin.Context) (*model.QRCode, bool) {
	code, err := lc.app.Repository.QRCode.GetActiveByUniqueCode(ctx, nil, ctx.Param("uniqueCode"))
	if err != nil {
		lc.respondError(ctx, "QR code not found", notFoundAs(err, ErrQRCodeNotFound))
		return nil, false
	}
	return code, true
}

// GetLeadPage counts a scan on every request and returns the owner's public company info.
func (lc LeadCaptureController) GetLeadPage(ctx *gin.Context) {
	code, ok := lc.activeCode(ctx)
	if !ok {
		return
	}

	if err := lc.app.Repository.QRCode.IncrementScan(ctx, nil, code.ID); err != nil {
		lc.app.Logger.Warnw("Failed to count qr scan", "qrCodeId", code.ID, "error", err)
	}

	util.ResponseSuccess(ctx, gin.H{
		"company": gin.H{
			"companyName": code.Profile.CompanyName,
			"industry":    code.Profile.Industry,
			"description": code.Profile.Description,
			"website":     code.Profile.Website,
		},
		"qrCode": gin.H{
			"name":     code.Name,
			"campaign": code.Campaign,
		},
	})
}

func (lc LeadCaptureController) SubmitLead(ctx *gin.Context) {
	type Request struct {
		Name    string `json:"name" form:"name" binding:"max=255"`
		Email   string `json:"email" form:"email" binding:"max=255"`
		Phone   string `json:"phone" form:"phone" binding:"max=50"`
		Company string `json:"company" form:"company" binding:"max=255"`
		Message string `json:"message" form:"message" binding:"max=5000"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		lc.badRequest(ctx, err)
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Name == "" {
		lc.badRequest(ctx, ErrLeadNameRequired, "name")
		return
	}
	if !util.IsValidEmail(body.Email) {
		lc.badRequest(ctx, ErrLeadEmailInvalid, "email")
		return
	}

	code, ok := lc.activeCode(ctx)
	if !ok {
		return
	}

	lead := &model.Lead{
		Name:      body.Name,
		Email:     body.Email,
		Phone:     strings.TrimSpace(body.Phone),
		Company:   strings.TrimSpace(body.Company),
		Message:   strings.TrimSpace(body.Message),
		QRCodeID:  code.ID,
		ProfileID: code.ProfileID,
	}
	if err := lc.app.Repository.Lead.Create(ctx, nil, lead); err != nil {
		lc.respondError(ctx, "Failed to save lead", err)
		return
	}

	lc.notifyLead(context.WithoutCancel(ctx.Request.Context()), code, lead)

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"lead": lead,
	})
}

func (lc LeadCaptureController) notifyLead(ctx context.Context, code *model.QRCode, lead *model.Lead) {
	profile := code.Profile

	owner, err := lc.app.Repository.User.GetById(ctx, nil, profile.UserID)
	if err != nil {
		lc.app.Logger.Warnw("Failed to load profile owner for lead notification", "profileId", profile.ID, "error", err)
	} else {
		lc.app.Notifier.Notify(mailer.TemplateLeadNotification, owner.Email, mailer.LeadNotificationData{
			CompanyName: profile.CompanyName,
			QRCodeName:  code.Name,
			Campaign:    code.Campaign,
			LeadName:    lead.Name,
			LeadEmail:   lead.Email,
			LeadPhone:   lead.Phone,
			LeadCompany: lead.Company,
			Message:     lead.Message,
		})
	}

	lc.app.Notifier.Notify(mailer.TemplateLeadWelcome, lead.Email, mailer.LeadWelcomeData{
		LeadName:    lead.Name,
		CompanyName: profile.CompanyName,
		Website:     profile.Website,
		Description: profile.Description,
	})
}
