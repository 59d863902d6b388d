package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/SeakMengs/AutoRFP/internal/ai"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind constant.ErrorKind
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound, constant.ErrKindNotFound},
		{pipeline.ErrProfileNotFound, http.StatusNotFound, constant.ErrKindNotFound},
		{fmt.Errorf("load: %w", ErrProposalNotFound), http.StatusNotFound, constant.ErrKindNotFound},
		{pipeline.ErrInsufficientText, http.StatusBadRequest, constant.ErrKindValidation},
		{extractor.ErrUnsupportedType, http.StatusBadRequest, constant.ErrKindValidation},
		{model.ErrInvalidStatus, http.StatusBadRequest, constant.ErrKindValidation},
		{ErrForbidden, http.StatusForbidden, constant.ErrKindForbidden},
		{model.ErrAlreadyResponded, http.StatusConflict, constant.ErrKindConflict},
		{model.ErrDuplicateInvitation, http.StatusConflict, constant.ErrKindConflict},
		{fmt.Errorf("gemini: %w", ai.ErrUpstream), http.StatusInternalServerError, constant.ErrKindUpstream},
		{ai.ErrMalformedAIResponse, http.StatusInternalServerError, constant.ErrKindUpstream},
		{fmt.Errorf("boom"), http.StatusInternalServerError, constant.ErrKindInternal},
	}

	for _, c := range cases {
		code, kind := statusForError(c.err)
		assert.Equal(t, c.code, code, c.err.Error())
		assert.Equal(t, c.kind, kind, c.err.Error())
	}
}

func TestNotFoundAs(t *testing.T) {
	assert.ErrorIs(t, notFoundAs(gorm.ErrRecordNotFound, ErrQRCodeNotFound), ErrQRCodeNotFound)

	other := fmt.Errorf("connection reset")
	assert.Equal(t, other, notFoundAs(other, ErrQRCodeNotFound))
}
