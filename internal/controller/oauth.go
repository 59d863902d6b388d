package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type OAuthController struct {
	*baseController
	googleOAuthConfig *oauth2.Config
}

const oauthStateCookie = "oauth_state"

var ErrOAuthDisabled = errors.New("google sign in is not configured")

type GoogleUser struct {
	Email         string `json:"email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
	AccessToken   string `json:"-"`
	RefreshToken  string `json:"-"`
}

func (oc OAuthController) ContinueWithGoogle(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google logic")

	if !oc.app.Config.Auth.GoogleOAuthConfig.Enabled() {
		util.ResponseFailed(ctx, http.StatusNotFound, "", util.GenerateErrorMessages(ErrOAuthDisabled), nil)
		return
	}

	state, err := util.GenerateNChar(16)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}
	ctx.SetCookie(oauthStateCookie, state, 600, "/", "", oc.app.Config.IsProduction(), true)

	url := oc.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)

	oc.app.Logger.Debugf("OAuth: Google, Redirect to: %s", url)
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

func (oc OAuthController) getGoogleUserInfo(ctx context.Context, code string) (*GoogleUser, error) {
	oc.app.Logger.Debug("OAuth: Google, Get user info logic")

	// Exchange the authorization code for an access token
	token, err := oc.googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to exchange token")
		return nil, err
	}

	client := oc.googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to fetch user info")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var userInfo GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to decode user info")
		return nil, err
	}
	userInfo.AccessToken = token.AccessToken
	userInfo.RefreshToken = token.RefreshToken

	return &userInfo, nil
}

// findOrCreateUser returns the account for the Google email, registering it together with an
// empty company profile on first sign in.
func (oc OAuthController) findOrCreateUser(ctx *gin.Context, info *GoogleUser) (*model.User, error) {
	user, err := oc.app.Repository.User.GetByEmail(ctx, nil, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	firstName := info.GivenName
	if firstName == "" {
		firstName = strings.Split(info.Email, "@")[0]
	}

	user = &model.User{
		Email:     strings.ToLower(info.Email),
		FirstName: firstName,
		LastName:  info.FamilyName,
	}
	err = oc.app.Repository.User.CreateWithProfile(ctx, nil, user, &model.CompanyProfile{
		CompanyName: info.Name,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		// Lost a race with a concurrent sign in
		return oc.app.Repository.User.GetByEmail(ctx, nil, info.Email)
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (oc OAuthController) ContinueWithGoogleCallback(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google callback logic")

	state, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != ctx.Query("state") {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid oauth state", util.GenerateErrorMessages(errors.New("oauth state mismatch"), "state"), nil)
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", oc.app.Config.IsProduction(), true)

	userInfo, err := oc.getGoogleUserInfo(ctx, ctx.Query("code"))
	if err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to get user info")

		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if !userInfo.VerifiedEmail || userInfo.Email == "" {
		util.ResponseFailed(ctx, http.StatusForbidden, "", util.GenerateErrorMessages(errors.New("google account email is not verified"), "email"), nil)
		return
	}

	user, err := oc.findOrCreateUser(ctx, userInfo)
	if err != nil {
		oc.respondError(ctx, "Failed to sign in with google", err)
		return
	}

	// Create or update oauth provider such that we can store the access token
	if err := oc.app.Repository.OAuthProvider.CreateOrUpdateByProviderUserId(ctx, nil, model.OAuthProvider{
		ProviderUserId: userInfo.ID,
		ProviderType:   constant.OAUTH_PROVIDER_GOOGLE,
		AccessToken:    userInfo.AccessToken,
		RefreshToken:   userInfo.RefreshToken,
		UserID:         user.ID,
	}); err != nil {
		oc.app.Logger.Warnw("OAuth: Google, failed to store provider", "userId", user.ID, "error", err)
	}

	refreshToken, accessToken, err := oc.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, *user)
	if err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to generate refresh and access token")

		oc.respondError(ctx, "Failed to generate tokens", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user":         user,
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
	})
}
