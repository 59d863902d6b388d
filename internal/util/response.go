package util

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Error   constant.ErrorKind `json:"error,omitempty"`
	Errors  any                `json:"errors,omitempty"`
	Data    any                `json:"data,omitempty"`
}

func BuildResponseSuccess(data any) Response {
	return Response{
		Success: true,
		Message: constant.REQUEST_SUCCESSFUL,
		Data:    data,
	}
}

func ResponseSuccess(ctx *gin.Context, data any) {
	ResponseSuccessWithStatus(ctx, http.StatusOK, data)
}

func ResponseSuccessWithStatus(ctx *gin.Context, code int, data any) {
	if data == nil {
		data = gin.H{}
	}

	ctx.JSON(code, BuildResponseSuccess(data))
	ctx.Abort()
}

// ErrorKindForStatus maps an HTTP status onto the error taxonomy.
func ErrorKindForStatus(code int) constant.ErrorKind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return constant.ErrKindValidation
	case http.StatusUnauthorized:
		return constant.ErrKindUnauth
	case http.StatusForbidden:
		return constant.ErrKindForbidden
	case http.StatusNotFound:
		return constant.ErrKindNotFound
	case http.StatusConflict:
		return constant.ErrKindConflict
	case http.StatusTooManyRequests:
		return constant.ErrKindRateLimit
	case http.StatusBadGateway:
		return constant.ErrKindUpstream
	default:
		return constant.ErrKindInternal
	}
}

func BuildResponseFailed(kind constant.ErrorKind, message string, err any, data any) Response {
	if message == "" {
		message = constant.REQUEST_UNSUCCESSFUL
	}

	// Sometimes we define err type any but err type is error
	if e, ok := err.(error); ok {
		err = GenerateErrorMessages(e)
	}

	if err == nil {
		err = gin.H{}
	}

	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: false,
		Message: message,
		Error:   kind,
		Errors:  err,
		Data:    data,
	}
}

func ResponseFailed(ctx *gin.Context, code int, message string, err any, data any) {
	ctx.JSON(code, BuildResponseFailed(ErrorKindForStatus(code), message, err, data))
	ctx.Abort()
}

// ResponseFailedKind is used when the kind cannot be derived from the status, for example
// upstream failures which are still reported as 500.
func ResponseFailedKind(ctx *gin.Context, code int, kind constant.ErrorKind, message string, err any, data any) {
	ctx.JSON(code, BuildResponseFailed(kind, message, err, data))
	ctx.Abort()
}

// ResponseRateLimited answers 429 with a Retry-After of at least one second.
func ResponseRateLimited(ctx *gin.Context, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	ctx.Header("Retry-After", strconv.Itoa(seconds))

	ResponseFailed(ctx, http.StatusTooManyRequests, "Too many requests, please try again later", nil, gin.H{
		"retryAfter": seconds,
	})
}
