package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/SeakMengs/AutoRFP/pkg/autorfp"
	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	*baseController
}

func (ac AnalyticsController) TrackStage(ctx *gin.Context) {
	type Request struct {
		ProposalID string `json:"proposalId" form:"proposalId" binding:"required,strNotEmpty"`
		Stage      string `json:"stage" form:"stage" binding:"required,strNotEmpty,max=60"`
	}
	var body Request

	user, ok := ac.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		ac.badRequest(ctx, err)
		return
	}

	proposal, err := ac.app.Repository.Proposal.GetForUser(ctx, nil, user.ID, body.ProposalID)
	if err != nil {
		ac.respondError(ctx, "Proposal not found", notFoundAs(err, ErrProposalNotFound))
		return
	}

	stage := &model.ProposalStageTime{
		Stage:      strings.TrimSpace(body.Stage),
		StartedAt:  time.Now(),
		ProposalID: proposal.ID,
	}
	if err := ac.app.Repository.StageTime.Create(ctx, nil, stage); err != nil {
		ac.respondError(ctx, "Failed to track stage", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"stage": stage,
	})
}

// CompleteStage stamps completed_at. Completing twice moves the stamp forward.
func (ac AnalyticsController) CompleteStage(ctx *gin.Context) {
	user, ok := ac.mustAuthUser(ctx)
	if !ok {
		return
	}

	stage, err := ac.app.Repository.StageTime.GetForUser(ctx, nil, user.ID, ctx.Param("id"))
	if err != nil {
		ac.respondError(ctx, "Stage not found", err)
		return
	}

	now := time.Now()
	if err := ac.app.Repository.StageTime.Complete(ctx, nil, stage.ID, now); err != nil {
		ac.respondError(ctx, "Failed to complete stage", err)
		return
	}
	stage.CompletedAt = &now

	duration, _ := stage.Duration()
	util.ResponseSuccess(ctx, gin.H{
		"stage":         stage,
		"durationHours": duration.Hours(),
	})
}

func (ac AnalyticsController) ProposalTimes(ctx *gin.Context) {
	user, ok := ac.mustAuthUser(ctx)
	if !ok {
		return
	}

	stages, err := ac.app.Repository.StageTime.ListForUser(ctx, nil, user.ID)
	if err != nil {
		ac.respondError(ctx, "Failed to load stage times", err)
		return
	}

	samples := make([]autorfp.StageSample, 0, len(stages))
	for _, s := range stages {
		samples = append(samples, autorfp.StageSample{Stage: s.Stage, StartedAt: s.StartedAt, CompletedAt: s.CompletedAt})
	}

	util.ResponseSuccess(ctx, gin.H{
		"stages": autorfp.StageDurations(samples),
	})
}

func (ac AnalyticsController) TeamResponses(ctx *gin.Context) {
	user, ok := ac.mustAuthUser(ctx)
	if !ok {
		return
	}

	stats, times, err := ac.app.Repository.Invitation.StatsForOwner(ctx, nil, user.ID)
	if err != nil {
		ac.respondError(ctx, "Failed to load team responses", err)
		return
	}

	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		counts[string(s.Status)] = s.Count
	}
	durations := make([]time.Duration, 0, len(times))
	for _, t := range times {
		durations = append(durations, t.RespondedAt.Sub(t.InvitedAt))
	}

	util.ResponseSuccess(ctx, gin.H{
		"responses": autorfp.SummarizeResponses(counts, durations),
	})
}
