package crypto

import (
	"strings"
	"testing"
)

const testKey = "0000000000000000000000000000000000000000000000000000000000000000"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sealed, err := svc.EncryptField("feedback muito bom")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if !strings.HasPrefix(sealed, "enc:v1:") {
		t.Fatalf("sealed value missing prefix: %q", sealed)
	}

	plain, err := svc.DecryptField(sealed)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if plain != "feedback muito bom" {
		t.Fatalf("round trip mismatch: %q", plain)
	}
}

func TestDecryptLegacyPlaintextPassesThrough(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plain, err := svc.DecryptField("never encrypted")
	if err != nil {
		t.Fatalf("legacy plaintext must not fail: %v", err)
	}
	if plain != "never encrypted" {
		t.Fatalf("legacy plaintext changed: %q", plain)
	}
}

func TestUnconfiguredKeyPassesThroughOnEncrypt(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Configured() {
		t.Fatal("empty key must not configure the service")
	}

	sealed, err := svc.EncryptField("plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sealed != "plain" {
		t.Fatalf("expected pass-through, got %q", sealed)
	}
}

func TestDecryptMalformedCiphertextFails(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.DecryptField("enc:v1:not-base64!!"); err == nil {
		t.Fatal("expected error for malformed ciphertext")
	}
	if _, err := svc.DecryptField("enc:v1:QQ=="); err == nil {
		t.Fatal("expected error for truncated ciphertext")
	}
}

func TestEmptyValuePassesThrough(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sealed, err := svc.EncryptField("")
	if err != nil || sealed != "" {
		t.Fatalf("empty value should pass through, got %q err %v", sealed, err)
	}
}
