package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/ai"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/SeakMengs/AutoRFP/pkg/autorfp"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProposalController struct {
	*baseController
}

const (
	maxBatchItems = 20
	mimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrContentNotObject = errors.New("content must be a JSON object")
	ErrUnknownSection   = errors.New("section does not exist in this proposal")
	ErrBatchEmpty       = errors.New("at least one file, pasted text or rfpId is required")
	ErrBatchTooLarge    = fmt.Errorf("at most %d items can be generated in one batch", maxBatchItems)
	ErrInvalidDuplicate = errors.New("duplicate must be overwrite or skip")
)

func decodeContent(raw datatypes.JSON) map[string]any {
	content := map[string]any{}
	if len(raw) == 0 {
		return content
	}
	if err := json.Unmarshal(raw, &content); err != nil || content == nil {
		return map[string]any{}
	}
	return content
}

func (pc ProposalController) ownedProposal(ctx *gin.Context) (*model.Proposal, bool) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return nil, false
	}

	proposal, err := pc.app.Repository.Proposal.GetForUser(ctx, nil, user.ID, ctx.Param("id"))
	if err != nil {
		pc.respondError(ctx, "Proposal not found", notFoundAs(err, ErrProposalNotFound))
		return nil, false
	}

	return proposal, true
}

func (pc ProposalController) CreateProposal(ctx *gin.Context) {
	type Request struct {
		Title    string                    `json:"title" binding:"required,cmin=1,cmax=255"`
		Template constant.ProposalTemplate `json:"template" binding:"omitempty,oneof=standard technical executive creative"`
		RFPID    string                    `json:"rfpId" binding:"max=64"`
		Content  json.RawMessage           `json:"content"`
	}
	var body Request

	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		pc.badRequest(ctx, err)
		return
	}

	content := datatypes.JSON("{}")
	if len(body.Content) > 0 && string(body.Content) != "null" {
		var m map[string]any
		if err := json.Unmarshal(body.Content, &m); err != nil {
			pc.badRequest(ctx, ErrContentNotObject, "content")
			return
		}
		content = datatypes.JSON(body.Content)
	}

	template := body.Template
	if template == "" {
		template = constant.ProposalTemplateStandard
	}

	proposal := &model.Proposal{
		Title:    strings.TrimSpace(body.Title),
		Status:   constant.ProposalStatusDraft,
		Template: template,
		Content:  content,
		UserID:   user.ID,
	}

	if body.RFPID != "" {
		profile, err := pc.getProfile(ctx, user.ID)
		if err != nil {
			pc.respondError(ctx, "Profile not found", err)
			return
		}
		rfp, err := pc.app.Repository.RFP.GetForProfile(ctx, nil, profile.ID, body.RFPID)
		if err != nil {
			pc.respondError(ctx, "RFP not found", notFoundAs(err, pipeline.ErrRFPNotFound))
			return
		}
		proposal.RFPUploadID = &rfp.ID
	}

	created, err := pc.app.Repository.Proposal.Create(ctx, nil, proposal)
	if err != nil {
		pc.respondError(ctx, "Failed to create proposal", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"proposal": created,
	})
}

// GenerateProposal is detached from client cancellation once the request is accepted.
func (pc ProposalController) GenerateProposal(ctx *gin.Context) {
	type Request struct {
		RFPID    string                    `json:"rfpId" form:"rfpId" binding:"required,strNotEmpty"`
		Template constant.ProposalTemplate `json:"template" form:"template"`
		Title    string                    `json:"title" form:"title" binding:"max=255"`
	}
	var body Request

	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		pc.badRequest(ctx, err)
		return
	}

	proposal, err := pc.app.Pipeline.Generate(context.WithoutCancel(ctx.Request.Context()), user.ID, pipeline.GenerateInput{
		RFPID:    body.RFPID,
		Template: body.Template,
		Title:    body.Title,
	})
	if err != nil {
		pc.respondError(ctx, "Failed to generate proposal", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"proposal": proposal,
	})
}

// GenerateBatch accepts multipart "files", repeated "texts" and repeated "rfpIds". Items run
// in that order, one at a time.
func (pc ProposalController) GenerateBatch(ctx *gin.Context) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	template := constant.ProposalTemplate(ctx.PostForm("template"))
	if template != "" && !template.Valid() {
		pc.badRequest(ctx, pipeline.ErrInvalidTemplate, "template")
		return
	}

	duplicate := pipeline.DuplicatePolicy(ctx.DefaultPostForm("duplicate", string(pipeline.DuplicateOverwrite)))
	if !duplicate.Valid() {
		pc.badRequest(ctx, ErrInvalidDuplicate, "duplicate")
		return
	}

	var items []pipeline.BatchItem
	if form, err := ctx.MultipartForm(); err == nil {
		for _, fh := range form.File["files"] {
			data, mimeType, err := pc.readUpload(fh)
			if err != nil {
				pc.respondUploadError(ctx, "files", fmt.Errorf("%s: %w", fh.Filename, err))
				return
			}
			items = append(items, pipeline.BatchItem{
				Upload: pipeline.UploadInput{FileName: fh.Filename, MimeType: mimeType, Data: data},
			})
		}
	}
	for _, text := range ctx.PostFormArray("texts") {
		if strings.TrimSpace(text) == "" {
			continue
		}
		// Pasted text has no file name, so it never counts as a duplicate
		items = append(items, pipeline.BatchItem{Upload: pipeline.UploadInput{Text: text}})
	}
	for _, id := range ctx.PostFormArray("rfpIds") {
		if id = strings.TrimSpace(id); id != "" {
			items = append(items, pipeline.BatchItem{RFPID: id})
		}
	}

	if len(items) == 0 {
		pc.badRequest(ctx, ErrBatchEmpty, "files")
		return
	}
	if len(items) > maxBatchItems {
		pc.badRequest(ctx, ErrBatchTooLarge, "files")
		return
	}

	if !pc.chargeAI(ctx, len(items)) {
		return
	}

	summary, err := pc.app.Pipeline.GenerateBatch(context.WithoutCancel(ctx.Request.Context()), user.ID, pipeline.BatchInput{
		Items:     items,
		Template:  template,
		Duplicate: duplicate,
	})
	if err != nil {
		pc.respondError(ctx, "Failed to generate proposals", err)
		return
	}

	if summary.SuccessCount == 0 {
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "No proposal was generated", nil, summary)
		return
	}

	util.ResponseSuccess(ctx, summary)
}

func (pc ProposalController) ListProposals(ctx *gin.Context) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	var statuses []constant.ProposalStatus
	if raw := ctx.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			status := constant.ProposalStatus(strings.TrimSpace(s))
			if !status.Valid() {
				pc.badRequest(ctx, model.ErrInvalidStatus, "status")
				return
			}
			statuses = append(statuses, status)
		}
	}

	pagination := util.ReadPagination(ctx)
	proposals, total, err := pc.app.Repository.Proposal.ListForUser(ctx, nil, user.ID, repository.ProposalFilter{
		Search:   strings.TrimSpace(ctx.Query("search")),
		Status:   statuses,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		pc.respondError(ctx, "Failed to list proposals", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"proposals": proposals,
		"total":     total,
		"totalPage": util.CalculateTotalPage(total, pagination.PageSize),
		"page":      pagination.Page,
		"pageSize":  pagination.PageSize,
	})
}

func (pc ProposalController) GetProposal(ctx *gin.Context) {
	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"proposal": proposal,
	})
}

// UpdateProposal writes whichever fields are present. Concurrent edits are last-write-wins.
func (pc ProposalController) UpdateProposal(ctx *gin.Context) {
	type Request struct {
		Title    *string                    `json:"title" binding:"omitempty,cmin=1,cmax=255"`
		Template *constant.ProposalTemplate `json:"template" binding:"omitempty,oneof=standard technical executive creative"`
		Score    *int                       `json:"score" binding:"omitempty,gte=0,lte=100"`
		Content  json.RawMessage            `json:"content"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		pc.badRequest(ctx, err)
		return
	}

	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	fields := map[string]any{}
	if body.Title != nil {
		fields["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Template != nil {
		fields["template"] = *body.Template
	}
	if body.Score != nil {
		fields["score"] = *body.Score
	}
	if len(body.Content) > 0 && string(body.Content) != "null" {
		var m map[string]any
		if err := json.Unmarshal(body.Content, &m); err != nil {
			pc.badRequest(ctx, ErrContentNotObject, "content")
			return
		}
		fields["content"] = datatypes.JSON(body.Content)
	}

	if err := pc.app.Repository.Proposal.Update(ctx, nil, proposal.ID, fields); err != nil {
		pc.respondError(ctx, "Failed to update proposal", err)
		return
	}

	pc.respondWithProposal(ctx, proposal.ID)
}

func (pc ProposalController) respondWithProposal(ctx *gin.Context, proposalId string) {
	proposal, err := pc.app.Repository.Proposal.GetById(ctx, nil, proposalId)
	if err != nil {
		pc.respondError(ctx, "Proposal not found", notFoundAs(err, ErrProposalNotFound))
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"proposal": proposal,
	})
}

// UpdateStatus accepts any enumerated status. No transition order is enforced.
func (pc ProposalController) UpdateStatus(ctx *gin.Context) {
	type Request struct {
		Status constant.ProposalStatus `json:"status" form:"status" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		pc.badRequest(ctx, err)
		return
	}

	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	if err := proposal.SetStatus(body.Status, time.Now()); err != nil {
		pc.respondError(ctx, "Invalid status", err)
		return
	}

	if err := pc.app.Repository.Proposal.Update(ctx, nil, proposal.ID, map[string]any{
		"status":       proposal.Status,
		"submitted_at": proposal.SubmittedAt,
	}); err != nil {
		pc.respondError(ctx, "Failed to update status", err)
		return
	}

	pc.respondWithProposal(ctx, proposal.ID)
}

func (pc ProposalController) Withdraw(ctx *gin.Context) {
	type Request struct {
		Reason string `json:"reason" form:"reason" binding:"max=2000"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		pc.badRequest(ctx, err)
		return
	}

	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	if err := pc.app.Repository.Proposal.Update(ctx, nil, proposal.ID, map[string]any{
		"status":           constant.ProposalStatusWithdrawn,
		"withdrawn_reason": strings.TrimSpace(body.Reason),
	}); err != nil {
		pc.respondError(ctx, "Failed to withdraw proposal", err)
		return
	}

	pc.respondWithProposal(ctx, proposal.ID)
}

// RefineSection rewrites one top level section with the model and stores the result.
func (pc ProposalController) RefineSection(ctx *gin.Context) {
	type Request struct {
		Section      string `json:"section" form:"section" binding:"required,strNotEmpty,max=120"`
		Instructions string `json:"instructions" form:"instructions" binding:"max=4000"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		pc.badRequest(ctx, err)
		return
	}

	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	content := decodeContent(proposal.Content)
	current, exists := content[body.Section]
	if !exists && !slices.Contains(ai.RequiredProposalKeys, body.Section) {
		pc.badRequest(ctx, ErrUnknownSection, "section")
		return
	}

	refined, err := pc.app.AI.RefineProposalSection(context.WithoutCancel(ctx.Request.Context()), ai.RefineInput{
		ProposalTitle: proposal.Title,
		Section:       body.Section,
		Current:       current,
		Instructions:  body.Instructions,
	})
	if err != nil {
		pc.respondError(ctx, "Failed to refine section", err)
		return
	}

	content[body.Section] = refined["content"]
	raw, err := json.Marshal(content)
	if err != nil {
		pc.respondError(ctx, "Failed to refine section", err)
		return
	}

	if err := pc.app.Repository.Proposal.Update(ctx, nil, proposal.ID, map[string]any{
		"content": datatypes.JSON(raw),
	}); err != nil {
		pc.respondError(ctx, "Failed to save refined section", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"section": body.Section,
		"content": refined["content"],
		"notes":   refined["notes"],
	})
}

// Scorecard asks the model to grade the proposal against its RFP and keeps the overall score.
func (pc ProposalController) Scorecard(ctx *gin.Context) {
	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	rfp := model.RFPUpload{Title: proposal.Title}
	if proposal.RFPUpload != nil {
		rfp = *proposal.RFPUpload
	}

	scorecard, err := pc.app.AI.GenerateScorecard(context.WithoutCancel(ctx.Request.Context()), ai.ScorecardInput{
		RFP:      rfp,
		Proposal: decodeContent(proposal.Content),
	})
	if err != nil {
		pc.respondError(ctx, "Failed to generate scorecard", err)
		return
	}

	score, err := ai.ScoreFrom(scorecard)
	if err != nil {
		pc.respondError(ctx, "Failed to generate scorecard", err)
		return
	}

	if err := pc.app.Repository.Proposal.Update(ctx, nil, proposal.ID, map[string]any{
		"score": score,
	}); err != nil {
		pc.respondError(ctx, "Failed to save score", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"score":     score,
		"scorecard": scorecard,
	})
}

// Timeline lays the projectTimeline phases out as consecutive date ranges from ?start
// (YYYY-MM-DD, default today).
func (pc ProposalController) Timeline(ctx *gin.Context) {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := ctx.Query("start"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			pc.badRequest(ctx, errors.New("start must be formatted as YYYY-MM-DD"), "start")
			return
		}
		start = parsed
	}

	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	phases := autorfp.PhasesFromContent(decodeContent(proposal.Content)["projectTimeline"])
	util.ResponseSuccess(ctx, gin.H{
		"timeline": autorfp.BuildTimeline(phases, start),
	})
}

func (pc ProposalController) DeleteProposal(ctx *gin.Context) {
	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	if err := pc.app.Repository.Proposal.Delete(ctx, nil, proposal.ID); err != nil {
		pc.respondError(ctx, "Failed to delete proposal", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

// exportDocument orders the known sections first, then any extra keys alphabetically.
func exportDocument(proposal *model.Proposal) autorfp.ExportDocument {
	content := decodeContent(proposal.Content)
	doc := autorfp.ExportDocument{Title: proposal.Title}
	if proposal.RFPUpload != nil && proposal.RFPUpload.ClientName != "" {
		doc.Subtitle = "Prepared for " + proposal.RFPUpload.ClientName
	}

	seen := map[string]bool{}
	for _, section := range ai.ProposalSections {
		seen[section.Key] = true
		if v, ok := content[section.Key]; ok && v != nil {
			doc.Sections = append(doc.Sections, autorfp.ExportSection{Title: section.Title, Body: autorfp.FlattenValue(v)})
		}
	}

	extra := make([]string, 0, len(content))
	for k := range content {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if content[k] == nil {
			continue
		}
		doc.Sections = append(doc.Sections, autorfp.ExportSection{Title: autorfp.HumanizeKey(k), Body: autorfp.FlattenValue(content[k])})
	}

	return doc
}

func exportFileName(proposal *model.Proposal, ext string) string {
	return util.SafeFileName(proposal.Title) + ext
}

func (pc ProposalController) markExported(ctx *gin.Context, proposal *model.Proposal) {
	if err := pc.app.Repository.Proposal.Update(ctx, nil, proposal.ID, map[string]any{
		"exported_at": time.Now(),
	}); err != nil {
		pc.app.Logger.Warnw("Failed to mark proposal exported", "proposalId", proposal.ID, "error", err)
	}
}

func (pc ProposalController) ExportDocx(ctx *gin.Context) {
	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := autorfp.WriteDocx(&buf, exportDocument(proposal)); err != nil {
		pc.respondError(ctx, "Failed to export proposal", err)
		return
	}

	pc.markExported(ctx, proposal)

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName(proposal, ".docx")))
	ctx.Data(http.StatusOK, mimeDocx, buf.Bytes())
}

func (pc ProposalController) ExportPDF(ctx *gin.Context) {
	proposal, ok := pc.ownedProposal(ctx)
	if !ok {
		return
	}

	tempDir, err := util.CreateTempDir("autorfp_export_*")
	if err != nil {
		pc.respondError(ctx, "Error creating temporary directory", err)
		return
	}
	defer os.RemoveAll(tempDir)

	outFile := filepath.Join(tempDir, "proposal.pdf")
	exporter := autorfp.NewPDFExporter(pc.app.Config.Export.FontPath, pc.app.Config.Export.BoldFontPath)
	if err := exporter.Export(exportDocument(proposal), outFile); err != nil {
		if errors.Is(err, autorfp.ErrFontRequired) {
			util.ResponseFailed(ctx, http.StatusServiceUnavailable, "PDF export is not configured", util.GenerateErrorMessages(err), nil)
			return
		}
		pc.respondError(ctx, "Failed to export proposal", err)
		return
	}

	pc.markExported(ctx, proposal)

	ctx.FileAttachment(outFile, exportFileName(proposal, ".pdf"))
}
