package token

import (
	"testing"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := "super-secret"

	tok, err := Generate(42, "0xabc0000000000000000000000000000000000def", "user", secret, 24)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	claims, err := Validate(tok, secret)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if claims.AccountID != 42 {
		t.Fatalf("account id mismatch: got %d want 42", claims.AccountID)
	}
	if claims.Address != "0xabc0000000000000000000000000000000000def" {
		t.Fatalf("address mismatch: got %q", claims.Address)
	}
	if claims.Role != "user" {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti on issued credentials")
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"

	tok, err := Generate(1, "0x01", "user", secret, -1)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = Validate(tok, secret)
	if err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Generate(1, "0x01", "user", "right-secret", 1)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = Validate(tok, "wrong-secret")
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Validate("not.a.jwt", "k")
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}

func TestValidate_ExpiredDistinctFromMalformed(t *testing.T) {
	t.Parallel()

	secret := "secret"

	expired, _ := Generate(1, "0x01", "user", secret, -1)
	_, expErr := Validate(expired, secret)

	valid, _ := Generate(1, "0x01", "user", secret, 1)
	corrupted := valid[:len(valid)-4] + "AAAA"
	_, malErr := Validate(corrupted, secret)

	if expErr != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", expErr)
	}
	if malErr != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", malErr)
	}
}

func TestGenerate_CarriesAdminRole(t *testing.T) {
	t.Parallel()

	tok, err := Generate(7, "0x07", "cpadmin", "s", 1)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	claims, err := Validate(tok, "s")
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if claims.Role != "cpadmin" {
		t.Fatalf("expected admin role to survive the round trip, got %q", claims.Role)
	}
}
