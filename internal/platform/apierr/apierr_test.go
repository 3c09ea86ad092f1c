package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("employee not found"), http.StatusNotFound},
		{"validation", Validation("query is required"), http.StatusBadRequest},
		{"upstream", Upstream(errors.New("boom"), "gemini"), http.StatusBadGateway},
		{"no reports", NoDirectReports("manager has no direct reports"), http.StatusUnprocessableEntity},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("score: %w", NotFound("x")), http.StatusNotFound},
		{"bare sentinel", fmt.Errorf("x: %w", ErrUpstream), http.StatusBadGateway},
		{"unknown", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Fatalf("StatusOf=%d want %d", got, tc.want)
			}
		})
	}
}

func TestKindsAreDistinguishable(t *testing.T) {
	err := fmt.Errorf("assess: %w", NoDirectReports("manager has no direct reports"))
	if !errors.Is(err, ErrNoDirectReports) {
		t.Fatalf("expected ErrNoDirectReports in chain")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("no-direct-reports must not match ErrNotFound")
	}
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause, "ml service")
	if !errors.Is(err, cause) || !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected both cause and ErrUpstream in chain")
	}
	if err.Error() != "ml service: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
