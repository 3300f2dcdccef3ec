package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminToken(time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !claims.Admin {
		t.Error("claims are missing the admin flag")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminToken(time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Error("ValidateToken accepted a tampered token")
	}

	SetJWTSecret("other-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token signed with another secret")
	}
}

func TestAdminAuth(t *testing.T) {
	SetJWTSecret("test-secret")

	called := false
	handler := AdminAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// No credentials.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin-code", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nesprávny PIN kód") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if called {
		t.Fatal("handler ran without a token")
	}

	token, err := GenerateAdminToken(time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	// Bearer header.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin-code", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Errorf("bearer token: status %d, called %v", rec.Code, called)
	}

	// Cookie.
	called = false
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin-code", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Errorf("cookie token: status %d, called %v", rec.Code, called)
	}

	// Expired token.
	expired, err := GenerateAdminToken(-time.Minute)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	called = false
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin-code", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized || called {
		t.Errorf("expired token: status %d, called %v", rec.Code, called)
	}
}
