package authclient

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestAPIErrorClassReachableThroughUnwrap(t *testing.T) {
	err := newAPIError(409, "email already registered")

	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("must not match an unrelated class")
	}
	if !strings.Contains(err.Error(), "status 409") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNetworkErrorWrapsCause(t *testing.T) {
	err := newNetworkError(io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("the transport cause must stay reachable")
	}
	if err.Status != 0 {
		t.Fatalf("network failures carry status 0, got %d", err.Status)
	}
}

func TestDefaultMessages(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "Bad request"},
		{403, "You do not have permission to perform this action"},
		{404, "Resource not found"},
		{409, "Conflict with current state"},
		{500, "Server error. Please try again later."},
		{502, "Server error. Please try again later."},
	}
	for _, tt := range tests {
		if got := newAPIError(tt.status, "").Message; got != tt.want {
			t.Errorf("status %d: got %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestServerMessageWins(t *testing.T) {
	if got := newAPIError(400, "email is invalid").Message; got != "email is invalid" {
		t.Fatalf("server-provided message must win, got %q", got)
	}
}

func TestUnmappedStatusFallsBackToServerClass(t *testing.T) {
	if err := newAPIError(418, ""); !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer for unmapped status, got %v", err)
	}
}
