package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	*baseController
}

var ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")

func (ac AuthController) Register(ctx *gin.Context) {
	type Request struct {
		Email       string `json:"email" form:"email" binding:"required,email,max=255"`
		Password    string `json:"password" form:"password" binding:"required,min=8,max=72"`
		FirstName   string `json:"firstName" form:"firstName" binding:"required,strNotEmpty,max=50"`
		LastName    string `json:"lastName" form:"lastName" binding:"max=50"`
		CompanyName string `json:"companyName" form:"companyName" binding:"required,strNotEmpty,max=255"`
		Industry    string `json:"industry" form:"industry" binding:"max=120"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.badRequest(ctx, err)
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		ac.respondError(ctx, "Failed to register", err)
		return
	}

	user := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(body.Email)),
		FirstName:    strings.TrimSpace(body.FirstName),
		LastName:     strings.TrimSpace(body.LastName),
		PasswordHash: hash,
	}
	profile := &model.CompanyProfile{
		CompanyName: strings.TrimSpace(body.CompanyName),
		Industry:    strings.TrimSpace(body.Industry),
	}

	if err := ac.app.Repository.User.CreateWithProfile(ctx, nil, user, profile); err != nil {
		ac.respondError(ctx, "Failed to register", err)
		return
	}

	refreshToken, accessToken, err := ac.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, *user)
	if err != nil {
		ac.respondError(ctx, "Failed to generate tokens", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"user":         user,
		"profile":      profile,
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
	})
}

func (ac AuthController) Login(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" form:"email" binding:"required,email"`
		Password string `json:"password" form:"password" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.badRequest(ctx, err)
		return
	}

	user, err := ac.app.Repository.User.GetByEmail(ctx, nil, strings.TrimSpace(body.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid credentials", util.GenerateErrorMessages(auth.ErrInvalidCredentials), nil)
			return
		}
		ac.respondError(ctx, "Failed to login", err)
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, body.Password); err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid credentials", util.GenerateErrorMessages(err), nil)
		return
	}

	refreshToken, accessToken, err := ac.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, *user)
	if err != nil {
		ac.respondError(ctx, "Failed to generate tokens", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user":         user,
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
	})
}

// Logout drops the session identified by the refresh token.
func (ac AuthController) Logout(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ac.app.Repository.JWT.DeleteToken(ctx, nil, refreshToken); err != nil {
		ac.respondError(ctx, "Failed to logout", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) VerifyJwtAccessToken(ctx *gin.Context) {
	token := ctx.Param("token")

	// Keep in mind that verify jwt token does not check database.
	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), gin.H{
			"tokenValid": false,
		})
		return
	}

	if jwtClaims == nil || jwtClaims.Type != constant.JWT_TYPE_ACCESS {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("invalid jwt token type")), gin.H{
			"tokenValid": false,
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"tokenValid": true,
		"payload":    jwtClaims,
	})
}

func (ac AuthController) RefreshAccessToken(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(refreshToken)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if jwtClaims == nil || jwtClaims.Type != constant.JWT_TYPE_REFRESH {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("invalid jwt token type")), nil)
		return
	}

	newRefreshToken, newAccessToken, err := ac.app.Repository.JWT.RefreshToken(ctx, nil, refreshToken)
	if err != nil || newRefreshToken == nil || newAccessToken == nil {
		if err == nil {
			err = errors.New("failed to refresh token")
		}
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": newRefreshToken,
		"accessToken":  newAccessToken,
	})
}

// ForgotPassword answers success whether or not the email belongs to an account.
func (ac AuthController) ForgotPassword(ctx *gin.Context) {
	type Request struct {
		Email string `json:"email" form:"email" binding:"required,email"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.badRequest(ctx, err)
		return
	}

	user, err := ac.app.Repository.User.GetByEmail(ctx, nil, strings.TrimSpace(body.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ac.app.Logger.Errorw("Failed to look up user for password reset", "error", err)
		}
		util.ResponseSuccess(ctx, nil)
		return
	}

	token, err := util.GenerateNChar(48)
	if err != nil {
		ac.respondError(ctx, "Failed to create reset token", err)
		return
	}

	ttl := ac.app.Config.Auth.ResetTokenTTL
	if err := ac.app.Repository.PasswordReset.Create(ctx, nil, &model.PasswordReset{
		TokenHash: util.HashToken(token),
		ExpiresAt: time.Now().Add(ttl),
		UserID:    user.ID,
	}); err != nil {
		ac.respondError(ctx, "Failed to create reset token", err)
		return
	}

	ac.app.Notifier.Notify(mailer.TemplatePasswordReset, user.Email, mailer.PasswordResetData{
		FirstName: user.FirstName,
		ResetURL:  ac.app.Config.FrontURL + "/reset-password?token=" + token,
		ExpiresIn: ttl.String(),
	})

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) ResetPassword(ctx *gin.Context) {
	type Request struct {
		Token    string `json:"token" form:"token" binding:"required,strNotEmpty"`
		Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.badRequest(ctx, err)
		return
	}

	reset, err := ac.app.Repository.PasswordReset.GetByTokenHash(ctx, nil, util.HashToken(body.Token))
	now := time.Now()
	if err != nil || !reset.Usable(now) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			ac.respondError(ctx, "Failed to reset password", err)
			return
		}
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid reset token", util.GenerateErrorMessages(ErrResetTokenInvalid, "token"), nil)
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		ac.respondError(ctx, "Failed to reset password", err)
		return
	}

	tx := ac.app.Repository.DB.Begin()
	if err := ac.app.Repository.User.UpdatePassword(ctx, tx, reset.UserID, hash); err != nil {
		tx.Rollback()
		ac.respondError(ctx, "Failed to reset password", err)
		return
	}
	if err := ac.app.Repository.PasswordReset.MarkUsed(ctx, tx, reset.ID, now); err != nil {
		tx.Rollback()
		ac.respondError(ctx, "Failed to reset password", err)
		return
	}
	if err := ac.app.Repository.JWT.RevokeAllForUser(ctx, tx, reset.UserID); err != nil {
		tx.Rollback()
		ac.respondError(ctx, "Failed to reset password", err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		ac.respondError(ctx, "Failed to reset password", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) Me(ctx *gin.Context) {
	authUser, ok := ac.mustAuthUser(ctx)
	if !ok {
		return
	}

	user, err := ac.app.Repository.User.GetById(ctx, nil, authUser.ID)
	if err != nil {
		ac.respondError(ctx, "User not found", err)
		return
	}

	profile, err := ac.getProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, pipeline.ErrProfileNotFound) {
		ac.respondError(ctx, "Failed to get profile", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user":    user,
		"profile": profile,
	})
}
