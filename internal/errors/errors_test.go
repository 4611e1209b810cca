package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mythostools/investigator-api/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "invite code not found")
	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "invite code not found", err.Message)
	assert.Equal(t, "NOT_FOUND: invite code not found", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps plain error as internal", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := errors.Wrap(cause, "failed to load draft")
		assert.Equal(t, errors.CodeInternal, err.Code)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("preserves existing code", func(t *testing.T) {
		cause := errors.NotFound("draft not found")
		err := errors.Wrap(cause, "failed to resume")
		assert.Equal(t, errors.CodeNotFound, err.Code)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, "nothing"))
	})
}

func TestWithMeta(t *testing.T) {
	err := errors.FailedPrecondition("points remaining").
		WithMeta("allocated", 180).
		WithMeta("budget", 240)

	assert.Equal(t, 180, err.Meta["allocated"])
	assert.Equal(t, 240, err.Meta["budget"])
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	assert.Equal(t, errors.CodeOutOfRange, errors.GetCode(errors.OutOfRange("age")))
}

func TestTypeHelpers(t *testing.T) {
	assert.True(t, errors.IsResourceExhausted(errors.ResourceExhausted("no attempts remain")))
	assert.True(t, errors.IsFailedPrecondition(errors.FailedPrecondition("locked")))
	assert.False(t, errors.IsNotFound(errors.Internal("boom")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, errors.CodeNotFound.HTTPStatus())
	assert.Equal(t, 400, errors.CodeInvalidArgument.HTTPStatus())
	assert.Equal(t, 400, errors.CodeOutOfRange.HTTPStatus())
	assert.Equal(t, 412, errors.CodeFailedPrecondition.HTTPStatus())
	assert.Equal(t, 429, errors.CodeResourceExhausted.HTTPStatus())
	assert.Equal(t, 500, errors.Code("BOGUS").HTTPStatus())
}

func TestValidationBuilder(t *testing.T) {
	t.Run("empty builder returns nil", func(t *testing.T) {
		assert.NoError(t, errors.NewValidationBuilder().Build())
	})

	t.Run("collects field errors", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("playerName", "  ", vb)
		errors.ValidateRange("age", 14, 15, 89, vb)
		err := vb.Build()

		assert.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))

		var e *errors.Error
		assert.True(t, errors.As(err, &e))
		fields := e.Meta["validation_errors"].(map[string][]string)
		assert.Contains(t, fields, "playerName")
		assert.Contains(t, fields, "age")
	})

	t.Run("enum validation", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("method", "telepathy", []string{"dice", "point_buy", "direct"}, vb)
		assert.Error(t, vb.Build())
	})
}
