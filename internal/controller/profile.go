package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/SeakMengs/AutoRFP/pkg/autorfp"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProfileController struct {
	*baseController
}

func (pc ProfileController) GetProfile(ctx *gin.Context) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := pc.getProfile(ctx, user.ID)
	if err != nil {
		pc.respondError(ctx, "Profile not found", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"profile": profile,
	})
}

func (pc ProfileController) UpdateProfile(ctx *gin.Context) {
	type Request struct {
		CompanyName     *string                     `json:"companyName" binding:"omitempty,cmin=2,cmax=255"`
		Industry        *string                     `json:"industry" binding:"omitempty,max=120"`
		Description     *string                     `json:"description" binding:"omitempty,max=10000"`
		Website         *string                     `json:"website" binding:"omitempty,max=2048"`
		Services        *[]string                   `json:"services" binding:"omitempty,max=100"`
		Certifications  *[]string                   `json:"certifications" binding:"omitempty,max=100"`
		YearsInBusiness *int                        `json:"yearsInBusiness" binding:"omitempty,gte=0,lte=500"`
		EmployeeCount   *int                        `json:"employeeCount" binding:"omitempty,gte=0"`
		Visibility      *constant.ProfileVisibility `json:"visibility" binding:"omitempty,oneof=private public"`
		ContactInfo     json.RawMessage             `json:"contactInfo"`
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

	profile, err := pc.getProfile(ctx, user.ID)
	if err != nil {
		pc.respondError(ctx, "Profile not found", err)
		return
	}

	fields := map[string]any{}
	if body.CompanyName != nil {
		fields["company_name"] = strings.TrimSpace(*body.CompanyName)
	}
	if body.Industry != nil {
		fields["industry"] = strings.TrimSpace(*body.Industry)
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.Website != nil {
		fields["website"] = strings.TrimSpace(*body.Website)
	}
	if body.Services != nil {
		fields["services"] = datatypes.NewJSONSlice(*body.Services)
	}
	if body.Certifications != nil {
		fields["certifications"] = datatypes.NewJSONSlice(*body.Certifications)
	}
	if body.YearsInBusiness != nil {
		fields["years_in_business"] = *body.YearsInBusiness
	}
	if body.EmployeeCount != nil {
		fields["employee_count"] = *body.EmployeeCount
	}
	if body.Visibility != nil {
		fields["visibility"] = *body.Visibility
	}
	if len(body.ContactInfo) > 0 && string(body.ContactInfo) != "null" {
		var info model.ContactInfo
		if err := json.Unmarshal(body.ContactInfo, &info); err != nil {
			pc.badRequest(ctx, errors.New("contactInfo must be an object with teams, teamMembers and industryPlaybooks"), "contactInfo")
			return
		}
		fields["contact_info"] = datatypes.JSON(body.ContactInfo)
	}

	updated, err := pc.app.Repository.Profile.Update(ctx, nil, profile.ID, fields)
	if err != nil {
		pc.respondError(ctx, "Failed to update profile", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"profile": updated,
	})
}

// DeleteProfile closes the account. Rows cascade from the user, stored objects are removed
// first on a best effort basis.
func (pc ProfileController) DeleteProfile(ctx *gin.Context) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := pc.getProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, pipeline.ErrProfileNotFound) {
		pc.respondError(ctx, "Failed to delete profile", err)
		return
	}

	if profile != nil {
		pc.removeProfileObjects(ctx, profile.ID)
	}

	if err := pc.app.Repository.User.Delete(ctx, nil, user.ID); err != nil {
		pc.respondError(ctx, "Failed to delete profile", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (pc ProfileController) removeProfileObjects(ctx *gin.Context, profileId string) {
	if pc.app.Files == nil {
		return
	}

	documents, err := pc.app.Repository.Document.ListByProfile(ctx, nil, profileId, "")
	if err != nil {
		pc.app.Logger.Warnw("Failed to list documents for removal", "profileId", profileId, "error", err)
	}
	for _, d := range documents {
		if err := pc.app.Files.Remove(ctx, d.File); err != nil {
			pc.app.Logger.Warnw("Failed to remove document object", "documentId", d.ID, "error", err)
		}
	}

	for page := uint(1); ; page++ {
		rfps, _, err := pc.app.Repository.RFP.ListByProfile(ctx, nil, profileId, page, constant.MaxPageSize)
		if err != nil {
			pc.app.Logger.Warnw("Failed to list rfps for removal", "profileId", profileId, "error", err)
			return
		}
		for _, r := range rfps {
			if err := pc.app.Files.Remove(ctx, r.File); err != nil {
				pc.app.Logger.Warnw("Failed to remove rfp object", "rfpId", r.ID, "error", err)
			}
		}
		if len(rfps) < constant.MaxPageSize {
			return
		}
	}
}

func (pc ProfileController) Marketplace(ctx *gin.Context) {
	pagination := util.ReadPagination(ctx)

	profiles, total, err := pc.app.Repository.Profile.ListPublic(ctx, nil, repository.MarketplaceFilter{
		Search:   strings.TrimSpace(ctx.Query("search")),
		Industry: strings.TrimSpace(ctx.Query("industry")),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		pc.respondError(ctx, "Failed to list profiles", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"profiles":  profiles,
		"total":     total,
		"totalPage": util.CalculateTotalPage(total, pagination.PageSize),
		"page":      pagination.Page,
		"pageSize":  pagination.PageSize,
	})
}

// GetProfileById returns a public profile, or a private one to its owner.
func (pc ProfileController) GetProfileById(ctx *gin.Context) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := pc.app.Repository.Profile.GetById(ctx, nil, ctx.Param("id"))
	if err != nil {
		pc.respondError(ctx, "Profile not found", notFoundAs(err, pipeline.ErrProfileNotFound))
		return
	}

	if !profile.IsPublic() && profile.UserID != user.ID {
		pc.respondError(ctx, "Profile not found", pipeline.ErrProfileNotFound)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"profile": profile,
	})
}

func (pc ProfileController) Strength(ctx *gin.Context) {
	user, ok := pc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := pc.getProfile(ctx, user.ID)
	if err != nil {
		pc.respondError(ctx, "Profile not found", err)
		return
	}

	documents, err := pc.app.Repository.Document.CountByProfile(ctx, nil, profile.ID)
	if err != nil {
		pc.respondError(ctx, "Failed to count documents", err)
		return
	}

	info := profile.ParsedContactInfo()
	util.ResponseSuccess(ctx, gin.H{
		"strength": autorfp.ScoreProfile(autorfp.ProfileFacts{
			Description:    profile.Description,
			Website:        profile.Website,
			Services:       len(profile.Services),
			Certifications: len(profile.Certifications),
			Documents:      int(documents),
			TeamMembers:    len(info.TeamMembers),
			Playbooks:      len(info.IndustryPlaybooks),
		}),
	})
}
