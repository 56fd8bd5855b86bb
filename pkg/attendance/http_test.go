package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"TimerBot/internal/model"
	"TimerBot/pkg/errors"
	"TimerBot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestValidateSendsAuthenticatedRequest(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody model.ValidationRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		if r.Method != http.MethodPost || r.URL.Path != "/attendance/validate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		json.NewEncoder(w).Encode(model.ValidationResult{
			Valid:      true,
			Message:    "✅ Check-in registrado",
			BranchName: "Sucursal Centro",
		})
	}))
	defer srv.Close()

	v, err := NewHTTPValidator(srv.URL, "test-secret", 10*time.Second)
	if err != nil {
		t.Fatalf("NewHTTPValidator failed: %v", err)
	}

	result, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if gotAuth != "Bearer test-secret" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}
	if gotBody.Phone != "+5215512345678" || gotBody.Latitude != 19.4326 || gotBody.Longitude != -99.1332 {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if !result.Valid || result.BranchName != "Sucursal Centro" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestValidateRelaysGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.ValidationResult{
			Valid:   false,
			Message: "Estás fuera del rango permitido.",
		})
	}))
	defer srv.Close()

	v, _ := NewHTTPValidator(srv.URL, "test-secret", 10*time.Second)

	result, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332)
	if err != nil {
		t.Fatalf("business rejection must not be an error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected rejected result")
	}
	if result.Message != "Estás fuera del rango permitido." {
		t.Fatalf("gateway reason not relayed: %q", result.Message)
	}
}

func TestValidateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v, _ := NewHTTPValidator(srv.URL, "test-secret", 10*time.Second)

	if _, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332); err != errors.GatewayUnavailable {
		t.Fatalf("expected GatewayUnavailable, got %v", err)
	}
}

func TestValidateUnreachableGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立刻关闭，模拟连接拒绝

	v, _ := NewHTTPValidator(srv.URL, "test-secret", 10*time.Second)

	if _, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332); err != errors.GatewayUnavailable {
		t.Fatalf("expected GatewayUnavailable, got %v", err)
	}
}

func TestValidateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	v, _ := NewHTTPValidator(srv.URL, "test-secret", 50*time.Millisecond)

	if _, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332); err != errors.GatewayUnavailable {
		t.Fatalf("expected GatewayUnavailable on timeout, got %v", err)
	}
}

func TestValidateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v, _ := NewHTTPValidator(srv.URL, "test-secret", 10*time.Second)

	if _, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332); err != errors.GatewayBadResponse {
		t.Fatalf("expected GatewayBadResponse, got %v", err)
	}
}

func TestValidateRejectionWithoutReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.ValidationResult{Valid: false})
	}))
	defer srv.Close()

	v, _ := NewHTTPValidator(srv.URL, "test-secret", 10*time.Second)

	if _, err := v.Validate(context.Background(), "+5215512345678", 19.4326, -99.1332); err != errors.GatewayBadResponse {
		t.Fatalf("rejection without reason should be a bad response, got %v", err)
	}
}
