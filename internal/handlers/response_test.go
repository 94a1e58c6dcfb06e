package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteErrorKindWritesStandardizedJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorKind(w, http.StatusBadRequest, "", "something went wrong")

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if got := body["error"]; got != "something went wrong" {
		t.Fatalf("expected error %q, got %q", "something went wrong", got)
	}

	if _, ok := body["kind"]; ok {
		t.Fatal("did not expect kind field without a kind")
	}

	if _, ok := body["request_id"]; ok {
		t.Fatal("did not expect request_id field in JSON body")
	}
}

func TestWriteErrorKindIncludesKind(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorKind(w, http.StatusUnprocessableEntity, "empty_pathway", "empty pathway")

	var body ErrorResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if body.Kind != "empty_pathway" {
		t.Fatalf("expected kind %q, got %q", "empty_pathway", body.Kind)
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}
