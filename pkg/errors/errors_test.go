package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewError tests the basic creation of errors.
func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		code    ErrorCode
		message string
	}{
		{
			name:    "InvalidInput",
			code:    InvalidInput,
			message: "invalid run options",
		},
		{
			name:    "ResourceExhausted",
			code:    ResourceExhausted,
			message: "attempt budget exhausted",
		},
		{
			name:    "ResourceNotFound",
			code:    ResourceNotFound,
			message: "pool file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)

			customErr, ok := err.(*Error)

			assert.True(t, ok, "should be a custom *Error")
			assert.Equal(t, tt.code, customErr.Code())
			assert.Equal(t, tt.message, customErr.Error())

			// New errors carry no original to unwrap
			assert.Nil(t, customErr.Unwrap())
		})
	}
}

// TestWrapError tests error wrapping functionality.
func TestWrapError(t *testing.T) {
	originalErr := stderrors.New("original error")

	tests := []struct {
		name       string
		err        error
		code       ErrorCode
		wrapMsg    string
		expectNil  bool
		expectCode ErrorCode
	}{
		{
			name:       "Wrap normal error",
			err:        originalErr,
			code:       ValidationFailed,
			wrapMsg:    "config validation",
			expectNil:  false,
			expectCode: ValidationFailed,
		},
		{
			name:      "Wrap nil error",
			err:       nil,
			code:      ValidationFailed,
			wrapMsg:   "config validation",
			expectNil: true,
		},
		{
			name:       "Wrap custom error",
			err:        New(ResourceExhausted, "no survivable candidate"),
			code:       InvalidInput,
			wrapMsg:    "recombination",
			expectNil:  false,
			expectCode: InvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.code, tt.wrapMsg)

			if tt.expectNil {
				assert.Nil(t, wrapped)
				return
			}

			assert.NotNil(t, wrapped)

			ourErr := wrapped.(*Error)
			assert.Equal(t, tt.expectCode, ourErr.Code())
			assert.Contains(t, ourErr.Error(), tt.wrapMsg)

			// Verify original error is preserved
			unwrapped := ourErr.Unwrap()
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), unwrapped.Error())
			}
		})
	}
}

// TestErrorInterfaces tests compliance with Go error interfaces.
func TestErrorInterfaces(t *testing.T) {
	t.Run("errors.Is support", func(t *testing.T) {
		err1 := New(ResourceExhausted, "first")
		err2 := New(ResourceExhausted, "second")
		err3 := New(InvalidInput, "third")

		// Matching is by code, not message
		assert.True(t, stderrors.Is(err1, err2))
		assert.False(t, stderrors.Is(err1, err3))
	})

	t.Run("errors.Is through wrapping", func(t *testing.T) {
		inner := New(ResourceExhausted, "attempts exceeded")
		outer := Wrap(inner, InvalidInput, "run failed")

		assert.True(t, stderrors.Is(outer, New(ResourceExhausted, "")))
		assert.True(t, stderrors.Is(outer, New(InvalidInput, "")))
	})

	t.Run("errors.As support", func(t *testing.T) {
		err := Wrap(stderrors.New("boom"), Canceled, "run canceled")

		var custom *Error
		require.True(t, stderrors.As(err, &custom))
		assert.Equal(t, Canceled, custom.Code())
	})
}

// TestWithFields tests attaching structured context.
func TestWithFields(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, WithFields(nil, Fields{"gene": "color"}))
	})

	t.Run("fields on custom error", func(t *testing.T) {
		base := New(ResourceExhausted, "no survivable candidate")
		err := WithFields(base, Fields{"attempts": 100, "operation": "recombine"})

		custom := err.(*Error)
		assert.Equal(t, ResourceExhausted, custom.Code())
		assert.Equal(t, 100, custom.Fields()["attempts"])
		assert.Contains(t, custom.Error(), "attempts=100")

		// The original error is untouched
		assert.Empty(t, base.(*Error).Fields())
	})

	t.Run("fields merge and override", func(t *testing.T) {
		err := WithFields(New(InvalidInput, "bad options"), Fields{"n": 1})
		err = WithFields(err, Fields{"n": 2, "nBest": 5})

		fields := err.(*Error).Fields()
		assert.Equal(t, 2, fields["n"])
		assert.Equal(t, 5, fields["nBest"])
	})

	t.Run("fields on foreign error", func(t *testing.T) {
		err := WithFields(stderrors.New("plain"), Fields{"k": "v"})

		custom := err.(*Error)
		assert.Equal(t, Unknown, custom.Code())
		assert.Equal(t, "v", custom.Fields()["k"])
		assert.Equal(t, "plain", custom.Unwrap().Error())
	})

	t.Run("Fields returns a copy", func(t *testing.T) {
		err := WithFields(New(InvalidInput, "bad"), Fields{"k": 1})
		got := err.(*Error).Fields()
		got["k"] = 2

		assert.Equal(t, 1, err.(*Error).Fields()["k"])
	})
}

// TestErrorCodeString tests code names used in logs.
func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{InvalidInput, "invalid_input"},
		{ValidationFailed, "validation_failed"},
		{ResourceNotFound, "resource_not_found"},
		{Canceled, "canceled"},
		{ResourceExhausted, "resource_exhausted"},
		{Unknown, "unknown"},
		{ErrorCode(999), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}
}

// TestCheckContext tests the context helper used by rejection loops.
func TestCheckContext(t *testing.T) {
	t.Run("live context", func(t *testing.T) {
		assert.NoError(t, CheckContext(context.Background(), "recombine"))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := CheckContext(ctx, "recombine")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, context.Canceled))

		var custom *Error
		require.True(t, stderrors.As(err, &custom))
		assert.Equal(t, Canceled, custom.Code())
		assert.Contains(t, custom.Error(), "recombine canceled")
	})
}
