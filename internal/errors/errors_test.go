package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "room R9 not found", NotFound("room R9").Error())

	wrapped := Wrap(ValidationError("bad slot"), "failed to create campaign")
	assert.Equal(t, "failed to create campaign: bad slot", wrapped.Error())
}

func TestWrap_KeepsInnerCode(t *testing.T) {
	err := Wrapf(DegenerateCampaign("too few rooms"), "trial %d", 3)

	assert.Equal(t, CodeDegenerateCampaign, GetCode(err))
	assert.ErrorIs(t, err, ErrDegenerateCampaign)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestWrap_ForeignErrorIsInternal(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(cause, "failed to read")

	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, fmt.Errorf("hours must be positive"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "hours must be positive", err.Error())

	recoded := WithCode(CodeConfigInvalid, NotFound("sheet"))
	assert.ErrorIs(t, recoded, ErrConfigInvalid)
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestGetCodeAndHasCode(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.False(t, HasCode(nil, CodeNotFound))
	assert.True(t, HasCode(NotFound("x"), CodeNotFound))
	assert.True(t, IsAppError(fmt.Errorf("outer: %w", InvalidInput("x"))))
	assert.False(t, IsAppError(fmt.Errorf("plain")))
}

func TestIs_MatchesSentinelsOnly(t *testing.T) {
	a := ValidationErrorf("slot %d", 1)
	b := ValidationErrorf("slot %d", 2)

	assert.ErrorIs(t, a, ErrValidation)
	// a non-empty target message asks for identity, not a code match
	assert.False(t, stderrors.Is(a, b))
}
