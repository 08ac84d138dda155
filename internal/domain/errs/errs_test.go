package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type notFoundish struct{}

func (notFoundish) Error() string { return "design d1 not found" }
func (notFoundish) Is(target error) bool { return target == ErrNotFound }

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("seasonId", "bad"), KindValidation},
		{"wrapped not found", fmt.Errorf("loading: %w", NotFound("Design %s not found", "d1")), KindNotFound},
		{"already opened is a conflict", ErrAlreadyOpened, KindConflict},
		{"foreign error matching a sentinel", notFoundish{}, KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.ErrorIs(t, Conflict("x"), ErrConflict)
	assert.ErrorIs(t, ErrAlreadyOpened, ErrConflict)
	assert.NotErrorIs(t, Conflict("x"), ErrAlreadyOpened)
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", &Error{Kind: KindConflict, Msg: ErrAlreadyOpened.Msg}), ErrAlreadyOpened)
	assert.NotErrorIs(t, NotFound("x"), ErrConflict)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Cannot delete", Message(Conflict("Cannot delete")))
	assert.Equal(t, "design d1 not found", Message(notFoundish{}))
	assert.Equal(t, "Internal server error", Message(Internal("failed to load", errors.New("dsn secret"))))
	assert.Equal(t, "Internal server error", Message(errors.New("boom")))
}
