package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusPerKind(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad field"), http.StatusBadRequest},
		{Authentication("no session"), http.StatusUnauthorized},
		{Authorization("wrong role"), http.StatusForbidden},
		{NotFound("no such request"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Storage(errors.New("pq: connection refused")), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestUnclassifiedErrorCountsAsStorage(t *testing.T) {
	err := errors.New("something unexpected")
	if KindOf(err) != KindStorage {
		t.Errorf("KindOf(plain error) = %s, want %s", KindOf(err), KindStorage)
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain error) = %d, want 500", HTTPStatus(err))
	}
	if ClientMessage(err) != "internal server error" {
		t.Errorf("ClientMessage leaked detail: %q", ClientMessage(err))
	}
}

func TestStorageHidesCauseFromClient(t *testing.T) {
	cause := errors.New("pq: column \"preferred_time\" does not exist")
	err := Storage(cause)

	if ClientMessage(err) != "storage error" {
		t.Errorf("ClientMessage = %q, want generic message", ClientMessage(err))
	}
	if !errors.Is(err, cause) {
		t.Error("Storage should keep the cause for server-side logging")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("cancel request: %w", Conflict("already completed"))
	if !IsKind(err, KindConflict) {
		t.Errorf("wrapped error lost its kind: %v", err)
	}
	if ClientMessage(err) != "already completed" {
		t.Errorf("ClientMessage = %q", ClientMessage(err))
	}
}
