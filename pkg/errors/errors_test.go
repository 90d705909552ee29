package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidSpan, "item %s: end before start", "bach"),
			want: "INVALID_SPAN: item bach: end before start",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeCacheUnavailable, errors.New("connection refused"), "dial redis"),
			want: "CACHE_UNAVAILABLE: dial redis: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidInput, cause, "decode items")

	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap does not return the cause")
	}
	if err.Message != "decode items" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestCodeThroughStageWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidItem, "duplicate id %q", "handel")
	err := fmt.Errorf("validate: %w", inner)

	tests := []struct {
		name string
		err  error
		code Code
		is   bool
	}{
		{"stage wrapped", err, ErrCodeInvalidItem, true},
		{"other code", err, ErrCodeInvalidSpan, false},
		{"outermost code wins", Wrap(ErrCodeTimeout, inner, "layout"), ErrCodeTimeout, true},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.is {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.is)
			}
		})
	}

	if got := GetCode(err); got != ErrCodeInvalidItem {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidItem)
	}
	if got := GetCode(errors.New("boom")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidFormat, "unsupported input format \".csv\""), "unsupported input format \".csv\""},
		{"coded with cause", Wrap(ErrCodeFileNotFound, errors.New("no such file"), "open items.yaml"), "open items.yaml"},
		{"plain", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidItem, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidParams, "x"), http.StatusBadRequest},
		{fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), http.StatusNotFound},
		{New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{New(ErrCodeCacheUnavailable, "x"), http.StatusServiceUnavailable},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{New(ErrCodeInvalidConfig, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
