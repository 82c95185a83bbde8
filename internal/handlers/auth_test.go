package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoicegen/internal/services"
)

func TestSignupLoginFlow(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(services.NewAccountService(db))

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(
		`{"name":"Ada Lovelace","email":"ada@test.io","password":"Str0ng!Pass","confirm_password":"Str0ng!Pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.signup(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("expected session cookie on signup")
	}
	if strings.Contains(w.Body.String(), "Str0ng!Pass") {
		t.Fatal("response leaks password")
	}

	loginReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(
		`{"email":"ada@test.io","password":"Str0ng!Pass"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	h.login(loginW, loginReq)
	if loginW.Code != http.StatusOK {
		t.Fatalf("login expected 200 got %d", loginW.Code)
	}

	badReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(
		`{"email":"ada@test.io","password":"nope"}`))
	badReq.Header.Set("Content-Type", "application/json")
	badW := httptest.NewRecorder()
	h.login(badW, badReq)
	if badW.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", badW.Code)
	}
	if !strings.Contains(badW.Body.String(), "invalid_credentials") {
		t.Fatalf("expected invalid_credentials, got %s", badW.Body.String())
	}
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(services.NewAccountService(db))

	body := `{"name":"Ada Lovelace","email":"dup@test.io","password":"Str0ng!Pass","confirm_password":"Str0ng!Pass"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.signup(w, req)
		if w.Code != want {
			t.Fatalf("attempt %d expected %d got %d", i, want, w.Code)
		}
	}
}

func TestSignupWeakPasswordRejected(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(services.NewAccountService(db))

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(
		`{"name":"Ada Lovelace","email":"weak@test.io","password":"password","confirm_password":"password"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.signup(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "password") {
		t.Fatalf("expected password violation, got %s", w.Body.String())
	}
}
