// Package handler provides HTTP request handlers for FormSeal.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/yndnr/formseal-go/pkg/csrf"
	"github.com/yndnr/formseal-go/pkg/csrfhttp"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abc"

var (
	tokenInputRe = regexp.MustCompile(`name="_csrf_token" value="([0-9a-f]{64})"`)
	timeInputRe  = regexp.MustCompile(`name="_csrf_time" value="([0-9]+)"`)
)

// testHandler creates a handler mounted behind the guard middleware,
// the way the router wires it.
func testHandler(t *testing.T) http.Handler {
	t.Helper()

	guard, err := csrf.New(csrf.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return csrfhttp.Protect(guard)(New(logger, nil))
}

// fetchFormFields loads the form page and extracts the injected hidden
// field values.
func fetchFormFields(t *testing.T, h http.Handler) (token, timeStr string) {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	tokenMatch := tokenInputRe.FindStringSubmatch(body)
	timeMatch := timeInputRe.FindStringSubmatch(body)
	if tokenMatch == nil || timeMatch == nil {
		t.Fatalf("form page missing hidden fields:\n%s", body)
	}
	return tokenMatch[1], timeMatch[1]
}

// TestHandler_Health tests health endpoints.
func TestHandler_Health(t *testing.T) {
	h := testHandler(t)

	t.Run("GET /health returns healthy status", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}

		var resp Response
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.Code != "OK" {
			t.Errorf("expected code 'OK', got '%s'", resp.Code)
		}

		data, ok := resp.Data.(map[string]any)
		if !ok {
			t.Fatal("expected data to be a map")
		}

		if data["status"] != "healthy" {
			t.Errorf("expected status 'healthy', got '%v'", data["status"])
		}
	})

	t.Run("GET /ready returns ready status", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ready", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}

// TestHandler_FormPage tests the demo form page.
func TestHandler_FormPage(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "text/html") {
		t.Errorf("expected Content-Type 'text/html', got '%s'", contentType)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `<form method="POST" action="/submit">`) {
		t.Error("expected form element in page")
	}
	if !tokenInputRe.MatchString(body) {
		t.Error("expected hidden token input in page")
	}
	if !timeInputRe.MatchString(body) {
		t.Error("expected hidden time input in page")
	}
}

// TestHandler_Submit tests the protected submit route.
func TestHandler_Submit(t *testing.T) {
	h := testHandler(t)

	t.Run("accepts a form round trip", func(t *testing.T) {
		token, timeStr := fetchFormFields(t, h)

		form := url.Values{}
		form.Set("_csrf_token", token)
		form.Set("_csrf_time", timeStr)
		form.Set("name", "Ada")
		form.Set("message", "hello")

		req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp Response
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.Code != "OK" {
			t.Errorf("expected code 'OK', got '%s'", resp.Code)
		}

		data, ok := resp.Data.(map[string]any)
		if !ok {
			t.Fatal("expected data to be a map")
		}

		if data["accepted"] != true {
			t.Error("expected accepted to be true")
		}
		if data["name"] != "Ada" {
			t.Errorf("expected name 'Ada', got '%v'", data["name"])
		}
	})

	t.Run("rejects a submission without a token", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "Mallory")

		req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}

		var body struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if body.Code != csrf.ErrorCode {
			t.Errorf("expected code '%s', got '%s'", csrf.ErrorCode, body.Code)
		}
		if body.Message != "Missing CSRF token or timestamp" {
			t.Errorf("unexpected message '%s'", body.Message)
		}
		if rec.Header().Get("X-Error-Code") != csrf.ErrorCode {
			t.Error("expected X-Error-Code header on rejection")
		}
	})

	t.Run("rejects a token replayed by another client", func(t *testing.T) {
		token, timeStr := fetchFormFields(t, h)

		form := url.Values{}
		form.Set("_csrf_token", token)
		form.Set("_csrf_time", timeStr)

		req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "198.51.100.7:2222"
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Message != "Invalid CSRF token" {
			t.Errorf("unexpected message '%s'", body.Message)
		}
	})
}

// TestHandler_Token tests JSON token issuance.
func TestHandler_Token(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/token", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	token, _ := data["token"].(string)
	if len(token) != 64 {
		t.Errorf("expected 64-character token, got %d characters", len(token))
	}
	if ts, _ := data["time"].(float64); ts <= 0 {
		t.Error("expected positive issue time")
	}
	if data["token_field"] != csrf.DefaultTokenField {
		t.Errorf("expected token_field '%s', got '%v'", csrf.DefaultTokenField, data["token_field"])
	}
	if data["time_field"] != csrf.DefaultTimeField {
		t.Errorf("expected time_field '%s', got '%v'", csrf.DefaultTimeField, data["time_field"])
	}
}

// TestHandler_Token_RoundTrip submits with a token obtained from the
// JSON endpoint instead of the form page.
func TestHandler_Token_RoundTrip(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/token", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data := resp.Data.(map[string]any)

	form := url.Values{}
	form.Set(data["token_field"].(string), data["token"].(string))
	form.Set(data["time_field"].(string), strconv.FormatInt(int64(data["time"].(float64)), 10))
	form.Set("name", "Grace")

	submit := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
	submit.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()

	h.ServeHTTP(rec, submit)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

// TestHandler_Token_OutsideGuard tests the wiring failure branch.
func TestHandler_Token_OutsideGuard(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := New(logger, nil)

	req := httptest.NewRequest("GET", "/token", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "FS-SYS-5000" {
		t.Errorf("expected code 'FS-SYS-5000', got '%s'", resp.Code)
	}
}

// TestHandler_Version tests the version endpoint.
func TestHandler_Version(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/version", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	if data["version"] == "" {
		t.Error("expected version in response")
	}
	if data["go_version"] == "" {
		t.Error("expected go_version in response")
	}
}

// TestResponse_Envelope tests the response envelope format.
func TestResponse_Envelope(t *testing.T) {
	t.Run("success response has correct structure", func(t *testing.T) {
		data := map[string]string{"key": "value"}
		resp := NewResponse("req-123", data)

		if resp.Code != "OK" {
			t.Errorf("expected code 'OK', got '%s'", resp.Code)
		}
		if resp.Message != "Success" {
			t.Errorf("expected message 'Success', got '%s'", resp.Message)
		}
		if resp.RequestID != "req-123" {
			t.Errorf("expected request_id 'req-123', got '%s'", resp.RequestID)
		}
		if resp.Timestamp == 0 {
			t.Error("expected timestamp to be set")
		}
		if resp.Data == nil {
			t.Error("expected data to be set")
		}
	})

	t.Run("error response has correct structure", func(t *testing.T) {
		resp := NewErrorResponse("req-456", "FS-SYS-5000", "error message", nil)

		if resp.Code != "FS-SYS-5000" {
			t.Errorf("expected code 'FS-SYS-5000', got '%s'", resp.Code)
		}
		if resp.Message != "error message" {
			t.Errorf("expected message 'error message', got '%s'", resp.Message)
		}
		if resp.RequestID != "req-456" {
			t.Errorf("expected request_id 'req-456', got '%s'", resp.RequestID)
		}
		if resp.Data != nil {
			t.Error("expected data to be nil for error response")
		}
	})
}

// TestHandler_ResponseHeaders tests response headers.
func TestHandler_ResponseHeaders(t *testing.T) {
	h := testHandler(t)

	t.Run("sets Content-Type header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		contentType := rec.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got '%s'", contentType)
		}
	})

	t.Run("sets X-Request-ID header from input", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Request-ID", "custom-request-id")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		reqID := rec.Header().Get("X-Request-ID")
		if reqID != "custom-request-id" {
			t.Errorf("expected X-Request-ID 'custom-request-id', got '%s'", reqID)
		}
	})
}

// BenchmarkHandler_Health benchmarks health endpoint performance.
func BenchmarkHandler_Health(b *testing.B) {
	guard, err := csrf.New(csrf.Config{Secret: testSecret})
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := csrfhttp.Protect(guard)(New(logger, nil))

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
	}
}

// BenchmarkHandler_FormPage benchmarks form rendering with token issuance.
func BenchmarkHandler_FormPage(b *testing.B) {
	guard, err := csrf.New(csrf.Config{Secret: testSecret})
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := csrfhttp.Protect(guard)(New(logger, nil))

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
	}
}
