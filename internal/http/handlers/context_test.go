package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/bloomnext/pos-inventory/internal/http/handlers"
)

func TestUsernameFromRequestContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := handler.Username(req); got != "" {
		t.Errorf("expected empty username on a bare request, got %q", got)
	}

	req = req.WithContext(handler.WithUser(req.Context(), "clerk"))
	if got := handler.Username(req); got != "clerk" {
		t.Errorf("expected username 'clerk', got %q", got)
	}
}
