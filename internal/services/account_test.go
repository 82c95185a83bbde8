package services

import (
	"errors"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db)

	user, err := svc.Signup("Ada Lovelace", "ada@test.io", "Str0ng!Pass", "Str0ng!Pass")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Password == "Str0ng!Pass" {
		t.Fatal("password stored in clear")
	}

	if _, err := svc.Login("ada@test.io", "Str0ng!Pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login("ada@test.io", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("nobody@test.io", "Str0ng!Pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db)

	if _, err := svc.Signup("Ada Lovelace", "dup@test.io", "Str0ng!Pass", "Str0ng!Pass"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup("Other Person", "dup@test.io", "Str0ng!Pass", "Str0ng!Pass")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db)

	cases := []struct {
		name     string
		uname    string
		email    string
		password string
		confirm  string
		field    string
	}{
		{"short name", "A", "a@test.io", "Str0ng!Pass", "Str0ng!Pass", "name"},
		{"name with digits", "Ada 123", "a@test.io", "Str0ng!Pass", "Str0ng!Pass", "name"},
		{"bad email", "Ada Lovelace", "not-an-email", "Str0ng!Pass", "Str0ng!Pass", "email"},
		{"weak password", "Ada Lovelace", "a@test.io", "password", "password", "password"},
		{"no special char", "Ada Lovelace", "a@test.io", "Passw0rdd", "Passw0rdd", "password"},
		{"mismatch", "Ada Lovelace", "a@test.io", "Str0ng!Pass", "Other!Pass1", "confirm_password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(tc.uname, tc.email, tc.password, tc.confirm)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := ve.Violations[tc.field]; !ok {
				t.Fatalf("expected violation on %s, got %v", tc.field, ve.Violations)
			}
		})
	}
}
