package controller

import (
	"context"
	"net/http"

	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

type RFPController struct {
	*baseController
}

func (rc RFPController) ListRFPs(ctx *gin.Context) {
	user, ok := rc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := rc.getProfile(ctx, user.ID)
	if err != nil {
		rc.respondError(ctx, "Profile not found", err)
		return
	}

	pagination := util.ReadPagination(ctx)
	rfps, total, err := rc.app.Repository.RFP.ListByProfile(ctx, nil, profile.ID, pagination.Page, pagination.PageSize)
	if err != nil {
		rc.respondError(ctx, "Failed to list rfps", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"rfps":      rfps,
		"total":     total,
		"totalPage": util.CalculateTotalPage(total, pagination.PageSize),
		"page":      pagination.Page,
		"pageSize":  pagination.PageSize,
	})
}

// UploadRFP takes either a multipart "file" or pasted "text". The AI parse runs before the
// response, and a parse failure is reported on the stored upload rather than as an error.
func (rc RFPController) UploadRFP(ctx *gin.Context) {
	user, ok := rc.mustAuthUser(ctx)
	if !ok {
		return
	}

	var in pipeline.UploadInput
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		data, mimeType, err := rc.readUpload(fileHeader)
		if err != nil {
			rc.respondUploadError(ctx, "file", err)
			return
		}
		if !extractor.IsSupported(mimeType) {
			rc.badRequest(ctx, extractor.ErrUnsupportedType, "file")
			return
		}
		in = pipeline.UploadInput{FileName: fileHeader.Filename, MimeType: mimeType, Data: data}
	} else {
		type Request struct {
			Text     string `json:"text" form:"text" binding:"required,strNotEmpty"`
			FileName string `json:"fileName" form:"fileName" binding:"max=255"`
		}
		var body Request
		if err := ctx.ShouldBind(&body); err != nil {
			rc.badRequest(ctx, pipeline.ErrEmptyUpload, "file")
			return
		}
		in = pipeline.UploadInput{FileName: body.FileName, Text: body.Text}
	}

	rfp, err := rc.app.Pipeline.IngestRFP(context.WithoutCancel(ctx.Request.Context()), user.ID, in)
	if err != nil {
		rc.respondError(ctx, "Failed to process rfp", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"rfp":    rfp,
		"parsed": rfp.IsParsed(),
	})
}

func (rc RFPController) ownedRFP(ctx *gin.Context) (*model.RFPUpload, bool) {
	user, ok := rc.mustAuthUser(ctx)
	if !ok {
		return nil, false
	}

	profile, err := rc.getProfile(ctx, user.ID)
	if err != nil {
		rc.respondError(ctx, "Profile not found", err)
		return nil, false
	}

	rfp, err := rc.app.Repository.RFP.GetForProfile(ctx, nil, profile.ID, ctx.Param("id"))
	if err != nil {
		rc.respondError(ctx, "RFP not found", notFoundAs(err, pipeline.ErrRFPNotFound))
		return nil, false
	}

	return rfp, true
}

func (rc RFPController) GetRFP(ctx *gin.Context) {
	rfp, ok := rc.ownedRFP(ctx)
	if !ok {
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"rfp": rfp,
	})
}

func (rc RFPController) ReparseRFP(ctx *gin.Context) {
	user, ok := rc.mustAuthUser(ctx)
	if !ok {
		return
	}

	rfp, err := rc.app.Pipeline.ReparseRFP(context.WithoutCancel(ctx.Request.Context()), user.ID, ctx.Param("id"))
	if err != nil {
		rc.respondError(ctx, "Failed to reparse rfp", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"rfp":    rfp,
		"parsed": rfp.IsParsed(),
	})
}

// ValidateRFP records that the user reviewed the parsed fields.
func (rc RFPController) ValidateRFP(ctx *gin.Context) {
	type Request struct {
		Validated *bool `json:"validated" form:"validated"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		rc.badRequest(ctx, err)
		return
	}

	rfp, ok := rc.ownedRFP(ctx)
	if !ok {
		return
	}

	validated := true
	if body.Validated != nil {
		validated = *body.Validated
	}

	if err := rc.app.Repository.RFP.SetValidated(ctx, nil, rfp.ID, validated); err != nil {
		rc.respondError(ctx, "Failed to validate rfp", err)
		return
	}
	rfp.Validated = validated

	util.ResponseSuccess(ctx, gin.H{
		"rfp": rfp,
	})
}

func (rc RFPController) DeleteRFP(ctx *gin.Context) {
	rfp, ok := rc.ownedRFP(ctx)
	if !ok {
		return
	}

	if rfp.File.HasObject() {
		if err := rc.app.Files.Remove(ctx, rfp.File); err != nil {
			rc.respondError(ctx, "Failed to delete rfp file", err)
			return
		}
	}

	if err := rc.app.Repository.RFP.Delete(ctx, nil, rfp.ID); err != nil {
		rc.respondError(ctx, "Failed to delete rfp", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (rc RFPController) DownloadRFP(ctx *gin.Context) {
	rfp, ok := rc.ownedRFP(ctx)
	if !ok {
		return
	}

	if !rfp.File.HasObject() {
		// Pasted RFPs have no stored object, hand back the text
		ctx.Header("Content-Disposition", "attachment; filename=\""+rfp.File.ToBaseFilename()+"\"")
		ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rfp.ExtractedText))
		return
	}

	rc.streamFile(ctx, rfp.File)
}
