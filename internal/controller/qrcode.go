package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/SeakMengs/AutoRFP/pkg/autorfp"
	"github.com/gin-gonic/gin"
)

type QRCodeController struct {
	*baseController
}

const (
	qrUniqueCodeLength = 10
	maxQRCodeImageSize = 2048
)

func (qc QRCodeController) leadCaptureURL(code *model.QRCode) string {
	return qc.app.Config.FrontURL + "/lead-capture/" + code.UniqueCode
}

func (qc QRCodeController) CreateQRCode(ctx *gin.Context) {
	type Request struct {
		Name     string `json:"name" form:"name" binding:"required,cmin=1,cmax=255"`
		Campaign string `json:"campaign" form:"campaign" binding:"max=255"`
	}
	var body Request

	user, ok := qc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		qc.badRequest(ctx, err)
		return
	}

	profile, err := qc.getProfile(ctx, user.ID)
	if err != nil {
		qc.respondError(ctx, "Profile not found", err)
		return
	}

	uniqueCode, err := util.GenerateNChar(qrUniqueCodeLength)
	if err != nil {
		qc.respondError(ctx, "Failed to create qr code", err)
		return
	}

	code := &model.QRCode{
		UniqueCode: uniqueCode,
		Name:       strings.TrimSpace(body.Name),
		Campaign:   strings.TrimSpace(body.Campaign),
		IsActive:   true,
		ProfileID:  profile.ID,
	}
	if err := qc.app.Repository.QRCode.Create(ctx, nil, code); err != nil {
		qc.respondError(ctx, "Failed to create qr code", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"qrCode": code,
		"url":    qc.leadCaptureURL(code),
	})
}

func (qc QRCodeController) ListQRCodes(ctx *gin.Context) {
	user, ok := qc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := qc.getProfile(ctx, user.ID)
	if err != nil {
		qc.respondError(ctx, "Profile not found", err)
		return
	}

	codes, err := qc.app.Repository.QRCode.ListByProfile(ctx, nil, profile.ID)
	if err != nil {
		qc.respondError(ctx, "Failed to list qr codes", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"qrCodes": codes,
	})
}

func (qc QRCodeController) ownedQRCode(ctx *gin.Context) (*model.QRCode, bool) {
	user, ok := qc.mustAuthUser(ctx)
	if !ok {
		return nil, false
	}

	profile, err := qc.getProfile(ctx, user.ID)
	if err != nil {
		qc.respondError(ctx, "Profile not found", err)
		return nil, false
	}

	code, err := qc.app.Repository.QRCode.GetForProfile(ctx, nil, profile.ID, ctx.Param("id"))
	if err != nil {
		qc.respondError(ctx, "QR code not found", notFoundAs(err, ErrQRCodeNotFound))
		return nil, false
	}

	return code, true
}

func (qc QRCodeController) GetQRCode(ctx *gin.Context) {
	code, ok := qc.ownedQRCode(ctx)
	if !ok {
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"qrCode": code,
		"url":    qc.leadCaptureURL(code),
	})
}

func (qc QRCodeController) UpdateQRCode(ctx *gin.Context) {
	type Request struct {
		Name     *string `json:"name" binding:"omitempty,cmin=1,cmax=255"`
		Campaign *string `json:"campaign" binding:"omitempty,max=255"`
		IsActive *bool   `json:"isActive"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		qc.badRequest(ctx, err)
		return
	}

	code, ok := qc.ownedQRCode(ctx)
	if !ok {
		return
	}

	fields := map[string]any{}
	if body.Name != nil {
		code.Name = strings.TrimSpace(*body.Name)
		fields["name"] = code.Name
	}
	if body.Campaign != nil {
		code.Campaign = strings.TrimSpace(*body.Campaign)
		fields["campaign"] = code.Campaign
	}
	if body.IsActive != nil {
		code.IsActive = *body.IsActive
		fields["is_active"] = code.IsActive
	}

	if err := qc.app.Repository.QRCode.Update(ctx, nil, code.ID, fields); err != nil {
		qc.respondError(ctx, "Failed to update qr code", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"qrCode": code,
	})
}

func (qc QRCodeController) DeleteQRCode(ctx *gin.Context) {
	code, ok := qc.ownedQRCode(ctx)
	if !ok {
		return
	}

	if err := qc.app.Repository.QRCode.Delete(ctx, nil, code.ID); err != nil {
		qc.respondError(ctx, "Failed to delete qr code", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

// QRCodePNG renders the lead capture URL. ?size sets the edge length in pixels.
func (qc QRCodeController) QRCodePNG(ctx *gin.Context) {
	size := autorfp.DefaultQRCodeSize
	if raw := ctx.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRCodeImageSize {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid size", util.GenerateErrorMessages(strconv.ErrRange, "size"), nil)
			return
		}
		size = n
	}

	code, ok := qc.ownedQRCode(ctx)
	if !ok {
		return
	}

	png, err := autorfp.QRCodePNG(qc.leadCaptureURL(code), size)
	if err != nil {
		qc.respondError(ctx, "Failed to render qr code", err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

func (qc QRCodeController) QRCodeSVG(ctx *gin.Context) {
	code, ok := qc.ownedQRCode(ctx)
	if !ok {
		return
	}

	svg, err := autorfp.QRCodeSVG(qc.leadCaptureURL(code))
	if err != nil {
		qc.respondError(ctx, "Failed to render qr code", err)
		return
	}

	ctx.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// ListLeads is the CRM view of everyone who submitted the form behind a code.
func (qc QRCodeController) ListLeads(ctx *gin.Context) {
	code, ok := qc.ownedQRCode(ctx)
	if !ok {
		return
	}

	pagination := util.ReadPagination(ctx)
	leads, total, err := qc.app.Repository.Lead.ListByQRCode(ctx, nil, code.ID, pagination.Page, pagination.PageSize)
	if err != nil {
		qc.respondError(ctx, "Failed to list leads", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"leads":     leads,
		"total":     total,
		"totalPage": util.CalculateTotalPage(total, pagination.PageSize),
		"page":      pagination.Page,
		"pageSize":  pagination.PageSize,
	})
}
