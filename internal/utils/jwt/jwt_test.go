package jwt

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("42", "secret")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	userID, err := ExtractUserIDFromToken(token, "secret")
	if err != nil {
		t.Fatalf("extract user ID: %v", err)
	}
	if userID != "42" {
		t.Errorf("got %q, want %q", userID, "42")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := CreateToken("42", "secret")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := ExtractUserIDFromToken(token, "other_secret"); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ExtractUserIDFromToken("not-a-token", "secret"); err == nil {
		t.Fatal("expected validation failure for garbage token")
	}
}
