package httpjson

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadGateway, "upstream down")

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: want %d, got %d", http.StatusBadGateway, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type: %q", ct)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"upstream down"}` {
		t.Fatalf("body: %s", got)
	}
}
