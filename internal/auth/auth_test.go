package auth

import (
	"net/http/httptest"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plain text")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("valid password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("invalid password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	token, err := CreateAccessToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := httptest.NewRequest("GET", "/v1/users/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	userID, err := VerifyToken(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestVerifyTokenRejectsInvalid(t *testing.T) {
	Init("test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/users/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if _, err := VerifyToken(r); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	Init("first-secret")
	token, err := CreateAccessToken(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	Init("second-secret")
	r := httptest.NewRequest("GET", "/v1/users/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	if _, err := VerifyToken(r); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
