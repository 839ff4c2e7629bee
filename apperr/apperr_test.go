package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", Unauthorized("no session"), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"invalid state", InvalidState("not now"), http.StatusBadRequest},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"internal", Internal("db", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", Forbidden("nope")), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageHidesCause(t *testing.T) {
	err := Internal("Server error", errors.New("pq: connection refused"))
	if got := Message(err); got != "Server error" {
		t.Errorf("Message() = %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Error("expected Unwrap to expose the cause")
	}
	if got := Message(errors.New("raw")); got != "Server error" {
		t.Errorf("Message(raw) = %q", got)
	}
}

func TestIs(t *testing.T) {
	if !Is(NotFound("x"), KindNotFound) {
		t.Error("expected NotFound kind")
	}
	if Is(nil, KindInternal) {
		t.Error("nil must not match any kind")
	}
}
