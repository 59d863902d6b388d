package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SeakMengs/AutoRFP/internal/ai"
	appcontext "github.com/SeakMengs/AutoRFP/internal/app_context"
	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/SeakMengs/AutoRFP/internal/metrics"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrForbidden         = errors.New("you do not have permission to access this resource")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrQRCodeNotFound    = errors.New("qr code not found")
	ErrInvitationMissing = errors.New("invitation not found")
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Auth        *AuthController
	OAuth       *OAuthController
	Profile     *ProfileController
	Document    *DocumentController
	RFP         *RFPController
	Proposal    *ProposalController
	Team        *TeamController
	Analytics   *AnalyticsController
	QRCode      *QRCodeController
	LeadCapture *LeadCaptureController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	googleOAuthConfig := &oauth2.Config{
		ClientID:     app.Config.Auth.GoogleOAuthConfig.ClientID,
		ClientSecret: app.Config.Auth.GoogleOAuthConfig.ClientSecret,
		RedirectURL:  app.Config.Auth.GoogleOAuthConfig.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Auth:        &AuthController{baseController: bc},
		OAuth:       &OAuthController{baseController: bc, googleOAuthConfig: googleOAuthConfig},
		Profile:     &ProfileController{baseController: bc},
		Document:    &DocumentController{baseController: bc},
		RFP:         &RFPController{baseController: bc},
		Proposal:    &ProposalController{baseController: bc},
		Team:        &TeamController{baseController: bc, invitations: app.Repository.Invitation},
		Analytics:   &AnalyticsController{baseController: bc},
		QRCode:      &QRCodeController{baseController: bc},
		LeadCapture: &LeadCaptureController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

// mustAuthUser answers 401 itself when the request carries no user.
func (b *baseController) mustAuthUser(ctx *gin.Context) (*auth.JWTPayload, bool) {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		b.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return nil, false
	}
	return user, true
}

func (b *baseController) getProfile(ctx *gin.Context, userId string) (*model.CompanyProfile, error) {
	profile, err := b.app.Repository.Profile.GetByUserId(ctx, nil, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pipeline.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func statusForError(err error) (int, constant.ErrorKind) {
	switch {
	case errors.Is(err, pipeline.ErrProfileNotFound),
		errors.Is(err, pipeline.ErrRFPNotFound),
		errors.Is(err, ErrProposalNotFound),
		errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrQRCodeNotFound),
		errors.Is(err, ErrInvitationMissing),
		errors.Is(err, model.ErrNoStoredObject),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, constant.ErrKindNotFound
	case errors.Is(err, pipeline.ErrRFPNotParsed),
		errors.Is(err, pipeline.ErrInsufficientText),
		errors.Is(err, pipeline.ErrEmptyUpload),
		errors.Is(err, pipeline.ErrInvalidTemplate),
		errors.Is(err, extractor.ErrUnsupportedType),
		errors.Is(err, extractor.ErrExtractionFailed),
		errors.Is(err, model.ErrInvalidStatus):
		return http.StatusBadRequest, constant.ErrKindValidation
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, constant.ErrKindForbidden
	case errors.Is(err, model.ErrAlreadyResponded),
		errors.Is(err, model.ErrDuplicateInvitation),
		errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, constant.ErrKindConflict
	case errors.Is(err, ai.ErrUpstream),
		errors.Is(err, ai.ErrMalformedAIResponse):
		return http.StatusInternalServerError, constant.ErrKindUpstream
	default:
		return http.StatusInternalServerError, constant.ErrKindInternal
	}
}

// respondError logs err and answers with the status its kind maps to.
func (b *baseController) respondError(ctx *gin.Context, message string, err error) {
	code, kind := statusForError(err)
	if code >= http.StatusInternalServerError {
		b.app.Logger.Errorw(message, "path", ctx.FullPath(), "error", err)
	} else {
		b.app.Logger.Debugw(message, "path", ctx.FullPath(), "error", err)
	}

	util.ResponseFailedKind(ctx, code, kind, message, util.GenerateErrorMessages(err), nil)
}

// badRequest is used for binding errors so validator messages reach the client.
func (b *baseController) badRequest(ctx *gin.Context, err error, optionalParams ...any) {
	b.app.Logger.Error(err)
	util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, optionalParams...), nil)
}

func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// chargeAI takes n hits from the AI rule for the client and answers 429 itself when they do
// not fit in the current window.
func (b *baseController) chargeAI(ctx *gin.Context, n int) bool {
	limiter := b.app.RateLimiter
	if limiter == nil || !limiter.Enabled() {
		return true
	}

	rule := limiter.Rules.AI
	result := limiter.AllowN(ctx.Request.Context(), rule, ctx.ClientIP(), n)
	ctx.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
	ctx.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

	if !result.Allowed {
		b.app.Logger.Infow("Rate limit exceeded", "rule", rule.Name, "ip", ctx.ClientIP(), "path", ctx.Request.URL.Path, "hits", n)
		metrics.IncRateLimited(rule.Name)
		util.ResponseRateLimited(ctx, result.RetryAfter)
		return false
	}
	return true
}
