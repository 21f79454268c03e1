package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		kind Kind
		ok   bool
	}{
		{name: "nil", err: nil, ok: false},
		{name: "plain error", err: cause, ok: false},
		{name: "direct", err: Transport("ai.Complete", cause), kind: KindTransport, ok: true},
		{name: "wrapped once", err: fmt.Errorf("generate: %w", Parse("ai.DecodeJSON", cause)), kind: KindParse, ok: true},
		{
			name: "wrapped twice",
			err:  fmt.Errorf("run: %w", fmt.Errorf("plan: %w", Validation("plan", "no topics"))),
			kind: KindValidation,
			ok:   true,
		},
		{
			name: "outermost classification wins",
			err:  Configuration("cli", Transport("ai.Complete", cause)),
			kind: KindConfiguration,
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)

			if tt.ok {
				assert.True(t, Is(tt.err, tt.kind))
			}
			assert.False(t, Is(tt.err, Kind("other")))
		})
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "op and cause", err: Transport("ai.Complete", errors.New("timeout")), want: "ai.Complete: transport error: timeout"},
		{name: "no op", err: New(KindParse, "", errors.New("bad json")), want: "parse error: bad json"},
		{name: "no cause", err: New(KindConfiguration, "ai.NewClient", nil), want: "ai.NewClient: configuration error"},
		{name: "kind only", err: &Error{Kind: KindValidation}, want: "validation error"},
		{name: "formatted validation", err: Validation("ideas", "niche is required (got %q)", ""), want: `ideas: validation error: niche is required (got "")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	var nilErr *Error
	assert.Equal(t, "", nilErr.Error())
}

func TestError_Unwrap(t *testing.T) {
	err := Transport("ai.Complete", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, New(KindParse, "op", nil).Unwrap())
}
