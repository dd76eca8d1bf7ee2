package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"dehydration", errors.ErrCodeDehydrationSelection, "select two H atoms and one O atom"},
		{"catalog", errors.ErrCodeCatalogLoad, "catalog unreadable"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
			assert.NotEmpty(t, ae.Stack)
		})
	}
}

func TestAppError_ErrorFormat(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeAtomNotFound, "atom not found")
	assert.Equal(t, "[ATM_001] atom not found", ae.Error())

	withDetail := ae.WithDetail("id=abc")
	assert.Equal(t, "[ATM_001] atom not found: id=abc", withDetail.Error())
	assert.Empty(t, ae.Detail, "WithDetail must not mutate the receiver")
}

func TestNewf(t *testing.T) {
	t.Parallel()

	ae := errors.Newf(errors.ErrCodeScriptStep, "step %d: %s", 3, "bad op")
	assert.Equal(t, "step 3: bad op", ae.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilReturnsNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCatalogInvalid, "bad yaml")
	outer := errors.Wrap(inner, errors.CodeUnknown, "loading catalog")

	assert.Equal(t, errors.ErrCodeCatalogInvalid, outer.Code)
	assert.True(t, stderrors.Is(outer, inner))
}

func TestWrap_ChainInspection(t *testing.T) {
	t.Parallel()

	base := fmt.Errorf("disk gone")
	ae := errors.Wrap(base, errors.ErrCodeSceneRead, "read scene")
	wrapped := fmt.Errorf("cli: %w", ae)

	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeSceneRead))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeSceneDecode))
	assert.Equal(t, errors.ErrCodeSceneRead, errors.GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(fmt.Errorf("plain")))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeAtomNotFound, "x")))
	assert.True(t, errors.IsNotFound(errors.NotFound("x")))
	assert.False(t, errors.IsNotFound(errors.Internal("x")))
	assert.False(t, errors.IsNotFound(nil))
}

func TestIsUserFacing(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsUserFacing(errors.New(errors.ErrCodeDehydrationDistance, "too far")))
	assert.False(t, errors.IsUserFacing(errors.New(errors.ErrCodeCatalogLoad, "io")))
	assert.False(t, errors.IsUserFacing(nil))

	for _, code := range []errors.ErrorCode{errors.ErrCodeUnknownTool, errors.ErrCodeUnknownReagent, errors.ErrCodeToolMismatch} {
		err := errors.Wrap(errors.New(code, "bad input"), errors.CodeUnknown, "step 3 failed")
		assert.False(t, errors.IsUserFacing(err), code)
	}
}

func TestErrorCode_Module(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.ModuleReaction, errors.ErrCodeNotOxidizable.Module())
	assert.Equal(t, errors.ModuleCommon, errors.CodeInternal.Module())
	assert.Equal(t, "OK", errors.CodeOK.Module())
}

func TestWithCause(t *testing.T) {
	t.Parallel()

	var nilErr *errors.AppError
	assert.Nil(t, nilErr.WithCause(fmt.Errorf("x")))

	cause := fmt.Errorf("root")
	ae := errors.InvalidParam("bad").WithCause(cause)
	assert.Equal(t, cause, ae.Unwrap())
	assert.Equal(t, errors.CodeInvalidParam, ae.Code)
}
