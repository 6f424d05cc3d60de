package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"goprob/domain/core"
	"goprob/domain/probability"

	"github.com/stretchr/testify/assert"
)

func TestWrapClassifiesDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"draw size", fmt.Errorf("%w: -1", core.ErrDrawSize), CodeInvalidInput, 2},
		{"trial count", core.ErrTrialCount, CodeInvalidInput, 2},
		{"predicate", &probability.PredicateError{Err: stderrors.New("x")}, CodePredicateError, 4},
		{"scenario", fmt.Errorf("%w: %q", core.ErrScenarioNotFound, "x"), CodeNotFound, 2},
		{"mismatch", core.NewCountMismatchError(1, 2), CodeInternalError, 1},
		{"other", stderrors.New("disk full"), CodeInternalError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "run failed")
			assert.Equal(t, tt.code, GetCode(wrapped))
			assert.Equal(t, tt.exit, ExitCode(wrapped))
			assert.ErrorIs(t, wrapped, tt.err)
			assert.Contains(t, wrapped.Error(), "run failed")
		})
	}
}

func TestWrapKeepsAppErrorCode(t *testing.T) {
	inner := ConfigInvalid("GOPROB_TRIALS must be positive")
	outer := Wrapf(inner, "load %s", "config")
	assert.Equal(t, CodeConfigInvalid, GetCode(outer))
	assert.Equal(t, 3, ExitCode(outer))
	assert.True(t, IsAppError(outer))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.Equal(t, 1, ExitCode(stderrors.New("plain")))
}
